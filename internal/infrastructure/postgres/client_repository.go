package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/internal/domain/search"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `c.id, c.user_id, c.nom, c.prenom, c.description, c.date_debut, c.date_fin,
		c.created_at, c.updated_at, u.email`

// searchDocument replica search.Tokenize en SQL: todo lo que no es letra/dígito separa palabras.
const searchDocument = `to_tsvector('simple', regexp_replace(c.nom || ' ' || c.prenom || ' ' || u.email, '[^[:alnum:]]+', ' ', 'g'))`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.UserID, &c.Nom, &c.Prenom, &c.Description, &c.DateDebut, &c.DateFin,
		&c.CreatedAt, &c.UpdatedAt, &c.OwnerEmail)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, nom, prenom, description, date_debut, date_fin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.UserID, client.Nom, client.Prenom, client.Description,
		client.DateDebut, client.DateFin, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del scope por ID. (nil, nil) si no existe o es de otro usuario.
func (r *ClientRepo) GetByID(ctx context.Context, scope repository.ClientScope, id string) (*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients c JOIN users u ON u.id = c.user_id
		WHERE c.id = $1 AND c.user_id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, id, scope.OwnerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista los clientes del scope; con búsqueda usa to_tsquery con prefijos (término:*).
func (r *ClientRepo) List(ctx context.Context, scope repository.ClientScope, q search.Query) ([]*entity.Client, error) {
	var b strings.Builder
	b.WriteString(`
		SELECT ` + clientColumns + `
		FROM clients c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1`)
	args := []any{scope.OwnerID}
	if !q.IsEmpty() {
		b.WriteString(` AND ` + searchDocument + ` @@ to_tsquery('simple', $2)`)
		args = append(args, q.TSQuery())
	}
	b.WriteString(` ORDER BY c.nom COLLATE "C" ASC, c.id ASC`)
	return r.list(ctx, "list clients", b.String(), args...)
}

// ListByIDs devuelve los clientes del scope cuyo id está en ids.
func (r *ClientRepo) ListByIDs(ctx context.Context, scope repository.ClientScope, ids []string) ([]*entity.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1 AND c.id = ANY($2)
		ORDER BY c.nom COLLATE "C" ASC, c.id ASC`
	return r.list(ctx, "list clients by ids", query, scope.OwnerID, ids)
}

func (r *ClientRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count cuenta los clientes del scope.
func (r *ClientRepo) Count(ctx context.Context, scope repository.ClientScope) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients WHERE user_id = $1`, scope.OwnerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// CountAll cuenta todos los clientes.
func (r *ClientRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count all clients: %w", err)
	}
	return n, nil
}

// Update actualiza los campos editables de un cliente del scope. user_id no se modifica.
func (r *ClientRepo) Update(ctx context.Context, scope repository.ClientScope, client *entity.Client) error {
	query := `
		UPDATE clients SET nom = $3, prenom = $4, description = $5, date_debut = $6, date_fin = $7, updated_at = $8
		WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query,
		client.ID, scope.OwnerID, client.Nom, client.Prenom, client.Description,
		client.DateDebut, client.DateFin, client.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDateFin fija date_fin de un cliente del scope.
func (r *ClientRepo) UpdateDateFin(ctx context.Context, scope repository.ClientScope, id string, dateFin time.Time) error {
	query := `UPDATE clients SET date_fin = $3, updated_at = now() WHERE id = $1 AND user_id = $2`
	tag, err := r.q.Exec(ctx, query, id, scope.OwnerID, dateFin)
	if err != nil {
		return fmt.Errorf("update client date_fin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente del scope.
func (r *ClientRepo) Delete(ctx context.Context, scope repository.ClientScope, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, id, scope.OwnerID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
