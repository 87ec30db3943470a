package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrCannotDeleteSelf   = errors.New("no puede eliminar su propia cuenta")
)

// ValidationError lista los campos obligatorios que no pasaron la validación.
// errors.Is(err, ErrInvalidInput) es verdadero para cualquier ValidationError.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "campos inválidos: " + strings.Join(e.Fields, ", ")
}

// Is permite comparar con ErrInvalidInput vía errors.Is.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// HasField indica si el campo figura entre los inválidos.
func (e *ValidationError) HasField(name string) bool {
	for _, f := range e.Fields {
		if f == name {
			return true
		}
	}
	return false
}
