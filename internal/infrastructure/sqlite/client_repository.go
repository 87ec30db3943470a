package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/internal/domain/search"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository sobre SQLite (usable con *sql.DB o *sql.Tx).
// SQLite no tiene búsqueda por prefijo de palabra: List filtra en Go con search.Query.Matches
// sobre las filas ya restringidas al scope.
type ClientRepo struct {
	db DBTX
}

// NewClientRepository construye el adaptador.
func NewClientRepository(db DBTX) *ClientRepo {
	return &ClientRepo{db: db}
}

const clientColumns = `c.id, c.user_id, c.nom, c.prenom, c.description, c.date_debut, c.date_fin,
		c.created_at, c.updated_at, u.email`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var (
		c                    entity.Client
		debut, fin           sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&c.ID, &c.UserID, &c.Nom, &c.Prenom, &c.Description, &debut, &fin,
		&createdAt, &updatedAt, &c.OwnerEmail); err != nil {
		return nil, err
	}
	var err error
	if c.DateDebut, err = parseDate(debut); err != nil {
		return nil, fmt.Errorf("date_debut: %w", err)
	}
	if c.DateFin, err = parseDate(fin); err != nil {
		return nil, fmt.Errorf("date_fin: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	if c.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("updated_at: %w", err)
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO clients (id, user_id, nom, prenom, description, date_debut, date_fin, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		client.ID, client.UserID, client.Nom, client.Prenom, client.Description,
		formatDate(client.DateDebut), formatDate(client.DateFin),
		formatTime(client.CreatedAt), formatTime(client.UpdatedAt),
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
		WHERE c.id = ? AND c.user_id = ?`
	c, err := scanClient(r.db.QueryRowContext(ctx, query, id, scope.OwnerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// List lista los clientes del scope que cumplen q, ordenados por nom y id.
func (r *ClientRepo) List(ctx context.Context, scope repository.ClientScope, q search.Query) ([]*entity.Client, error) {
	query := `
		SELECT ` + clientColumns + `
		FROM clients c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = ?
		ORDER BY c.nom ASC, c.id ASC`
	all, err := r.list(ctx, "list clients", query, scope.OwnerID)
	if err != nil {
		return nil, err
	}
	if q.IsEmpty() {
		return all, nil
	}
	var out []*entity.Client
	for _, c := range all {
		if q.Matches(c.Nom, c.Prenom, c.OwnerEmail) {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListByIDs devuelve los clientes del scope cuyo id está en ids.
func (r *ClientRepo) ListByIDs(ctx context.Context, scope repository.ClientScope, ids []string) ([]*entity.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	// Los ids viajan como un único arreglo JSON: el número de parámetros no depende del tamaño de la selección.
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("list clients by ids: %w", err)
	}
	query := `
		SELECT ` + clientColumns + `
		FROM clients c JOIN users u ON u.id = c.user_id
		WHERE c.user_id = ? AND c.id IN (SELECT value FROM json_each(?))
		ORDER BY c.nom ASC, c.id ASC`
	args := []any{scope.OwnerID, string(raw)}
	return r.list(ctx, "list clients by ids", query, args...)
}

func (r *ClientRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Client, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients WHERE user_id = ?`, scope.OwnerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return n, nil
}

// CountAll cuenta todos los clientes.
func (r *ClientRepo) CountAll(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM clients`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count all clients: %w", err)
	}
	return n, nil
}

// Update actualiza los campos editables de un cliente del scope. user_id no se modifica.
func (r *ClientRepo) Update(ctx context.Context, scope repository.ClientScope, client *entity.Client) error {
	query := `
		UPDATE clients SET nom = ?, prenom = ?, description = ?, date_debut = ?, date_fin = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		client.Nom, client.Prenom, client.Description,
		formatDate(client.DateDebut), formatDate(client.DateFin), formatTime(client.UpdatedAt),
		client.ID, scope.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return requireAffected(res)
}

// UpdateDateFin fija date_fin de un cliente del scope.
func (r *ClientRepo) UpdateDateFin(ctx context.Context, scope repository.ClientScope, id string, dateFin time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE clients SET date_fin = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		formatDate(&dateFin), formatTime(time.Now()), id, scope.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update client date_fin: %w", err)
	}
	return requireAffected(res)
}

// Delete elimina un cliente del scope.
func (r *ClientRepo) Delete(ctx context.Context, scope repository.ClientScope, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ? AND user_id = ?`, id, scope.OwnerID)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
