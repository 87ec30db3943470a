package entity

import "time"

// Client representa un cliente de la cartera de un usuario.
// UserID se fija al crear y no cambia después.
type Client struct {
	ID          string
	UserID      string
	Nom         string
	Prenom      string
	Description string
	DateDebut   *time.Time // solo fecha (sin hora)
	DateFin     *time.Time // solo fecha (sin hora)
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// OwnerEmail se carga en lecturas (JOIN users) para la búsqueda; no se persiste en clients.
	OwnerEmail string
}
