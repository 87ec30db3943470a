package repository

import (
	"context"

	"github.com/jhoicas/gestion-clients/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando no hay fila.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve todos los usuarios, más recientes primero.
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// Delete elimina el usuario; la FK borra en cascada sus clientes.
	Delete(ctx context.Context, id string) error
	// DeleteAll vacía la tabla (solo para el seed).
	DeleteAll(ctx context.Context) error
}
