package dto

import "time"

// RegisterRequest entrada para registro (auth). El password se hashea en el caso de uso.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nom      string `json:"nom"`
	Prenom   string `json:"prenom"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UpdateUserRequest entrada para actualizar un usuario (campos opcionales).
type UpdateUserRequest struct {
	Email  *string `json:"email"`
	Nom    *string `json:"nom"`
	Prenom *string `json:"prenom"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID                string     `json:"id"`
	Email             string     `json:"email"`
	Nom               string     `json:"nom"`
	Prenom            string     `json:"prenom"`
	DisplayName       string     `json:"display_name"`
	RememberCreatedAt *time.Time `json:"remember_created_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// UserDetailResponse salida de GET /api/users/:id.
type UserDetailResponse struct {
	UserResponse
	ClientsCount int `json:"clients_count"`
}

// UserMutationResponse salida de update de usuario con aviso.
type UserMutationResponse struct {
	User   UserResponse `json:"user"`
	Notice string       `json:"notice"`
}
