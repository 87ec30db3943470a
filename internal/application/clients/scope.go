package clients

import (
	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
)

// ScopeFor devuelve el subconjunto de clientes sobre el que puede actuar el principal: los suyos.
func ScopeFor(p entity.Principal) repository.ClientScope {
	return repository.ClientScope{OwnerID: p.UserID}
}

// resolveScope es ScopeFor con la verificación de que hay un principal autenticado.
func resolveScope(p entity.Principal) (repository.ClientScope, error) {
	if p.UserID == "" {
		return repository.ClientScope{}, domain.ErrUnauthorized
	}
	return ScopeFor(p), nil
}
