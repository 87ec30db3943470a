package clients

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/internal/domain/search"
)

// UseCase casos de uso de la cartera de clientes. Toda operación recibe el principal explícitamente
// y trabaja solo dentro de su scope.
type UseCase struct {
	repo repository.ClientRepository
	tx   TxRunner
	log  zerolog.Logger
	now  func() time.Time
}

// NewUseCase construye el caso de uso. repo se usa para lecturas; las mutaciones pasan por tx.
func NewUseCase(repo repository.ClientRepository, tx TxRunner, log zerolog.Logger) *UseCase {
	return &UseCase{
		repo: repo,
		tx:   tx,
		log:  log.With().Str("component", "clients").Logger(),
		now:  time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// List devuelve los clientes del principal, filtrados por query si no está vacía, ordenados por nom.
func (uc *UseCase) List(ctx context.Context, p entity.Principal, query string) ([]*entity.Client, error) {
	scope, err := resolveScope(p)
	if err != nil {
		return nil, err
	}
	q := search.Parse(query)
	if !q.IsEmpty() {
		uc.log.Debug().Str("user_id", scope.OwnerID).Stringer("query", q).Msg("búsqueda de clientes")
	}
	return uc.repo.List(ctx, scope, q)
}

// Count devuelve cuántos clientes tiene el principal.
func (uc *UseCase) Count(ctx context.Context, p entity.Principal) (int, error) {
	scope, err := resolveScope(p)
	if err != nil {
		return 0, err
	}
	return uc.repo.Count(ctx, scope)
}

// Show obtiene un cliente del principal. Un cliente ajeno se reporta igual que uno inexistente.
func (uc *UseCase) Show(ctx context.Context, p entity.Principal, id string) (*entity.Client, error) {
	scope, err := resolveScope(p)
	if err != nil {
		return nil, err
	}
	client, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// Create crea un cliente cuyo dueño es el principal. Si falla la validación no se persiste nada.
func (uc *UseCase) Create(ctx context.Context, p entity.Principal, in dto.ClientRequest) (*entity.Client, error) {
	scope, err := resolveScope(p)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	client := &entity.Client{
		ID:         uuid.Must(uuid.NewV7()).String(),
		UserID:     scope.OwnerID,
		OwnerEmail: p.Email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := validate(client, applyFields(client, in)); err != nil {
		return nil, err
	}
	normalize(client)

	err = uc.tx.Run(ctx, func(repo repository.ClientRepository) error {
		return repo.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

// Update aplica los campos presentes en in a un cliente del principal, revalida y persiste en una transacción.
func (uc *UseCase) Update(ctx context.Context, p entity.Principal, id string, in dto.ClientRequest) (*entity.Client, error) {
	scope, err := resolveScope(p)
	if err != nil {
		return nil, err
	}
	var updated *entity.Client
	err = uc.tx.Run(ctx, func(repo repository.ClientRepository) error {
		client, err := repo.GetByID(ctx, scope, id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		if err := validate(client, applyFields(client, in)); err != nil {
			return err
		}
		normalize(client)
		client.UpdatedAt = uc.now()
		if err := repo.Update(ctx, scope, client); err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un cliente del principal.
func (uc *UseCase) Delete(ctx context.Context, p entity.Principal, id string) error {
	scope, err := resolveScope(p)
	if err != nil {
		return err
	}
	return uc.tx.Run(ctx, func(repo repository.ClientRepository) error {
		return repo.Delete(ctx, scope, id)
	})
}

// applyFields copia al cliente los campos presentes y devuelve los campos de fecha mal formados.
func applyFields(c *entity.Client, in dto.ClientRequest) []string {
	if in.Nom != nil {
		c.Nom = *in.Nom
	}
	if in.Prenom != nil {
		c.Prenom = *in.Prenom
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	var bad []string
	if in.DateDebut != nil {
		d, err := parseDate(*in.DateDebut)
		if err != nil {
			bad = append(bad, "date_debut")
		} else {
			c.DateDebut = d
		}
	}
	if in.DateFin != nil {
		d, err := parseDate(*in.DateFin)
		if err != nil {
			bad = append(bad, "date_fin")
		} else {
			c.DateFin = d
		}
	}
	return bad
}

// validate exige nom y prenom no vacíos. Lista todos los campos que fallan, incluidos los
// de fecha que applyFields no pudo interpretar.
func validate(c *entity.Client, badDates []string) error {
	var fields []string
	if strings.TrimSpace(c.Nom) == "" {
		fields = append(fields, "nom")
	}
	if strings.TrimSpace(c.Prenom) == "" {
		fields = append(fields, "prenom")
	}
	fields = append(fields, badDates...)
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// normalize se aplica después de validar: nom se guarda siempre en mayúsculas.
func normalize(c *entity.Client) {
	c.Nom = cases.Upper(language.Und).String(c.Nom)
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// dateOnly conserva el día calendario de t en su zona y lo expresa como fecha UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
