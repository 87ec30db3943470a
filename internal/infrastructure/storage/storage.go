// Package storage abre el almacenamiento configurado (PostgreSQL o SQLite), aplica las
// migraciones y expone los repositorios ya cableados.
package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-clients/internal/infrastructure/sqlite"
	"github.com/jhoicas/gestion-clients/pkg/config"
)

// Store repositorios y runner de transacciones sobre un mismo backend.
type Store struct {
	Driver  string
	Users   repository.UserRepository
	Clients repository.ClientRepository
	Tx      clients.TxRunner

	close func()
}

// Close libera el pool o la conexión subyacente.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open conecta según cfg.Driver y deja el esquema al día.
func Open(ctx context.Context, cfg config.DBConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.ApplyMigrations(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("almacenamiento listo")
		return &Store{
			Driver:  cfg.Driver,
			Users:   postgres.NewUserRepository(pool),
			Clients: postgres.NewClientRepository(pool),
			Tx:      postgres.NewTxRunner(pool),
			close:   pool.Close,
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := sqlite.ApplyMigrations(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Str("path", cfg.SQLitePath).Msg("almacenamiento listo")
		return &Store{
			Driver:  cfg.Driver,
			Users:   sqlite.NewUserRepository(db),
			Clients: sqlite.NewClientRepository(db),
			Tx:      sqlite.NewTxRunner(db),
			close:   func() { _ = db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("driver de almacenamiento desconocido: %q", cfg.Driver)
}
