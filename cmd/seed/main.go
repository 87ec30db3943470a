// seed reinicia los datos y carga dos usuarios de prueba con 20 clientes repartidos entre ambos.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (DB_DRIVER, DATABASE_URL, SQLITE_PATH, ...).
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/jhoicas/gestion-clients/internal/application/auth"
	"github.com/jhoicas/gestion-clients/internal/application/clients"
	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/infrastructure/storage"
	"github.com/jhoicas/gestion-clients/pkg/config"
	"github.com/jhoicas/gestion-clients/pkg/logger"
)

const seedPassword = "password"

var (
	lastNames  = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefèvre", "Michel", "Garcia", "Fournier"}
	firstNames = []string{"Camille", "Léa", "Hugo", "Louis", "Chloé", "Jules", "Manon", "Gabriel", "Inès", "Arthur", "Élodie", "Nathan", "Zoé", "Lucas"}
	sentences  = []string{
		"Client fidèle depuis plusieurs années.",
		"Intéressé par une extension du contrat.",
		"Préfère être contacté par courriel.",
		"Demande un suivi trimestriel.",
		"Dossier transmis par le service commercial.",
		"Paiements toujours à jour.",
	}
)

func main() {
	os.Exit(seed())
}

// seed devuelve el código de salida; los defer se ejecutan antes de terminar el proceso.
func seed() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Name: "seed"})

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log.Component("storage"))
	if err != nil {
		log.Error().Err(err).Msg("abrir almacenamiento")
		return 1
	}
	defer store.Close()

	if err := run(ctx, store, log); err != nil {
		log.Error().Err(err).Msg("seed")
		return 1
	}
	return 0
}

func run(ctx context.Context, store *storage.Store, log *logger.Logger) error {
	// Borrar usuarios elimina en cascada todos los clientes.
	if err := store.Users.DeleteAll(ctx); err != nil {
		return err
	}

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{})
	var owners []entity.Principal
	for _, in := range []dto.RegisterRequest{
		{Nom: "Admin", Prenom: "Admin", Email: "admin@admin.com", Password: seedPassword},
		{Nom: "User", Prenom: "User", Email: "user@user.com", Password: seedPassword},
	} {
		u, err := authUC.RegisterUser(ctx, in)
		if err != nil {
			return fmt.Errorf("crear usuario %s: %w", in.Email, err)
		}
		owners = append(owners, entity.Principal{UserID: u.ID, Email: u.Email})
	}

	clientsUC := clients.NewUseCase(store.Clients, store.Tx, log.Zerolog())
	today := time.Now().UTC()
	for i := 0; i < 20; i++ {
		in := dto.ClientRequest{
			Nom:         ptr(pick(lastNames)),
			Prenom:      ptr(pick(firstNames)),
			Description: ptr(pick(sentences) + " " + pick(sentences) + " " + pick(sentences)),
			DateDebut:   ptr(today.AddDate(0, 0, -rand.Intn(366)).Format(dto.DateLayout)),
			DateFin:     ptr(today.AddDate(0, 0, rand.Intn(731)).Format(dto.DateLayout)),
		}
		if _, err := clientsUC.Create(ctx, pick(owners), in); err != nil {
			return fmt.Errorf("crear cliente: %w", err)
		}
	}

	total, err := store.Clients.CountAll(ctx)
	if err != nil {
		return err
	}
	log.Info().Int("users", len(owners)).Int("clients", total).Msg("seed completado")
	return nil
}

func pick[T any](xs []T) T {
	return xs[rand.Intn(len(xs))]
}

func ptr(s string) *string { return &s }
