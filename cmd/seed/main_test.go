package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-clients/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-clients/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Seed sobre un archivo SQLite temporal
// ──────────────────────────────────────────────────────────────────────────────

func TestSeed_CargaUsuariosYClientes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("LOG_LEVEL", "error")

	require.Equal(t, 0, seed())
	// Reejecutar reinicia los datos en lugar de acumularlos.
	require.Equal(t, 0, seed())

	store, err := storage.Open(context.Background(),
		config.DBConfig{Driver: config.DriverSQLite, SQLitePath: path}, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	users, err := store.Users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	total, err := store.Clients.CountAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestSeed_ErrorDevuelveCodigoDeSalida(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", config.DriverSQLite)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "no-existe", "seed.db"))
	t.Setenv("LOG_LEVEL", "error")

	assert.Equal(t, 1, seed())
}

func TestSeed_ConfiguracionInvalida(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	assert.Equal(t, 1, seed())
}
