package repository

import (
	"context"
	"time"

	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/search"
)

// ClientScope delimita las filas de clients visibles para una operación: las del dueño OwnerID.
// Todo acceso a clientes existentes pasa por un scope; fuera de él la fila "no existe".
type ClientScope struct {
	OwnerID string
}

// ClientRepository define el puerto de persistencia para Client.
// Los métodos Get* devuelven (nil, nil) cuando la fila no existe o está fuera del scope.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, scope ClientScope, id string) (*entity.Client, error)
	// List devuelve los clientes del scope que cumplen q, ordenados por nom y luego id.
	// Un q vacío no filtra.
	List(ctx context.Context, scope ClientScope, q search.Query) ([]*entity.Client, error)
	// ListByIDs devuelve la intersección de ids con el scope (ids ajenos o inexistentes se ignoran).
	ListByIDs(ctx context.Context, scope ClientScope, ids []string) ([]*entity.Client, error)
	Count(ctx context.Context, scope ClientScope) (int, error)
	Update(ctx context.Context, scope ClientScope, client *entity.Client) error
	// UpdateDateFin fija date_fin; devuelve ErrNotFound si la fila no pertenece al scope.
	UpdateDateFin(ctx context.Context, scope ClientScope, id string, dateFin time.Time) error
	// Delete devuelve ErrNotFound si la fila no pertenece al scope.
	Delete(ctx context.Context, scope ClientScope, id string) error
	// CountAll cuenta todas las filas sin scope (diagnóstico y seed).
	CountAll(ctx context.Context) (int, error)
}
