package dto

// ErrorResponse cuerpo de error HTTP. Fields solo se llena en errores de validación.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// NoticeResponse respuesta de una mutación sin entidad (ej. DELETE), con el mensaje para el usuario.
type NoticeResponse struct {
	Notice string `json:"notice"`
}

// DateLayout formato de fecha (sin hora) usado en date_debut / date_fin.
const DateLayout = "2006-01-02"
