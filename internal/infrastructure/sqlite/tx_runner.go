package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
)

var _ clients.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con el repositorio de clientes atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(clients repository.ClientRepository) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewClientRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
