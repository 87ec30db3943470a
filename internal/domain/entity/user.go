package entity

import "time"

// User representa una cuenta del sistema. Es dueña de sus Clients.
type User struct {
	ID                string
	Email             string // único, sensible a mayúsculas
	Nom               string
	Prenom            string
	PasswordHash      string     // bcrypt hash, nunca plano en dominio después de persistir
	RememberCreatedAt *time.Time // nil = sin "recordarme" activo
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName devuelve "nom prenom", o el que exista de los dos, o el email como último recurso.
func (u *User) FullName() string {
	switch {
	case u.Nom != "" && u.Prenom != "":
		return u.Nom + " " + u.Prenom
	case u.Nom != "":
		return u.Nom
	case u.Prenom != "":
		return u.Prenom
	default:
		return u.Email
	}
}

// Principal es la identidad autenticada en nombre de la cual corre una operación.
type Principal struct {
	UserID string
	Email  string
}
