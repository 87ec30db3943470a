package dto

import "time"

// ClientRequest entrada para crear o actualizar un cliente.
// En update solo se aplican los campos presentes (no nil). Fechas en formato YYYY-MM-DD; "" borra la fecha.
// No hay user_id: el dueño siempre es el usuario autenticado.
type ClientRequest struct {
	Nom         *string `json:"nom"`
	Prenom      *string `json:"prenom"`
	Description *string `json:"description"`
	DateDebut   *string `json:"date_debut"`
	DateFin     *string `json:"date_fin"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Nom         string    `json:"nom"`
	Prenom      string    `json:"prenom"`
	Description string    `json:"description"`
	DateDebut   *string   `json:"date_debut"`
	DateFin     *string   `json:"date_fin"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClientListResponse listado (sin paginación) de los clientes del usuario.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Total int              `json:"total"`
	Query string           `json:"query,omitempty"`
}

// ClientMutationResponse salida de create/update: la entidad resultante y el aviso para el usuario.
type ClientMutationResponse struct {
	Client ClientResponse `json:"client"`
	Notice string         `json:"notice"`
}

// BulkUpdateDateRequest selección de clientes a los que se fija date_fin = hoy.
type BulkUpdateDateRequest struct {
	ClientIDs []string `json:"client_ids"`
}

// BulkUpdateDateResponse resultado agregado de la actualización masiva.
type BulkUpdateDateResponse struct {
	Updated         int    `json:"updated"`
	Total           int    `json:"total"`
	Requested       int    `json:"requested"`
	NothingSelected bool   `json:"nothing_selected"`
	Notice          string `json:"notice"`
}

// HomeResponse tablero del usuario autenticado.
type HomeResponse struct {
	ClientsCount int              `json:"clients_count"`
	Clients      []ClientResponse `json:"clients"`
}
