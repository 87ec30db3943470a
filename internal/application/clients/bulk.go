package clients

import (
	"context"
	"fmt"

	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
)

// BulkOutcome resultado agregado de una actualización masiva.
type BulkOutcome struct {
	Requested       int  // ids recibidos
	Total           int  // clientes del principal dentro de la selección
	Updated         int  // clientes efectivamente actualizados
	NothingSelected bool // selección vacía: aviso informativo, no error
}

// Notice mensaje para mostrar al usuario.
func (o BulkOutcome) Notice() string {
	if o.NothingSelected {
		return "Aucun client sélectionné."
	}
	return fmt.Sprintf("%d client(s) mis à jour.", o.Updated)
}

// BulkUpdateEndDate fija date_fin = hoy en cada cliente seleccionado que pertenezca al principal.
//
// Ids ajenos o inexistentes se descartan sin error. Cada cliente se actualiza en su propia
// transacción: el fallo de uno se registra y no detiene al resto, solo no suma en Updated.
// Volver a ejecutar con los mismos ids reescribe la misma fecha y cuenta igual.
func (uc *UseCase) BulkUpdateEndDate(ctx context.Context, p entity.Principal, ids []string) (BulkOutcome, error) {
	out := BulkOutcome{Requested: len(ids)}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		out.NothingSelected = true
		return out, nil
	}
	scope, err := resolveScope(p)
	if err != nil {
		return out, err
	}

	targets, err := uc.repo.ListByIDs(ctx, scope, ids)
	if err != nil {
		return out, fmt.Errorf("resolver selección: %w", err)
	}
	out.Total = len(targets)

	today := dateOnly(uc.now())
	for _, c := range targets {
		err := uc.tx.Run(ctx, func(repo repository.ClientRepository) error {
			return repo.UpdateDateFin(ctx, scope, c.ID, today)
		})
		if err != nil {
			uc.log.Warn().Err(err).
				Str("user_id", scope.OwnerID).
				Str("client_id", c.ID).
				Msg("actualización masiva: cliente omitido")
			continue
		}
		out.Updated++
	}

	uc.log.Info().
		Str("user_id", scope.OwnerID).
		Int("requested", out.Requested).
		Int("total", out.Total).
		Int("updated", out.Updated).
		Msg("actualización masiva de date_fin")
	return out, nil
}

// uniqueIDs elimina duplicados y vacíos conservando el orden.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
