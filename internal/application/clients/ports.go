package clients

import (
	"context"

	"github.com/jhoicas/gestion-clients/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio atado a esa tx.
// Si fn devuelve error se hace rollback; ningún cambio parcial queda visible.
type TxRunner interface {
	Run(ctx context.Context, fn func(clients repository.ClientRepository) error) error
}
