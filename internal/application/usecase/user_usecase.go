package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para el directorio de usuarios.
type UserUseCase struct {
	repo    repository.UserRepository
	clients repository.ClientRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, clients repository.ClientRepository) *UserUseCase {
	return &UserUseCase{repo: repo, clients: clients}
}

// List lista los usuarios, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]*dto.UserResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario con la cantidad de clientes que posee.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserDetailResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, err := uc.clients.Count(ctx, repository.ClientScope{OwnerID: user.ID})
	if err != nil {
		return nil, err
	}
	return &dto.UserDetailResponse{UserResponse: *ToUserResponse(user), ClientsCount: count}, nil
}

// Update modifica email, nom y prenom. El email sigue siendo obligatorio y único.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, &domain.ValidationError{Fields: []string{"email"}}
		}
		if email != user.Email {
			existing, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
		}
		user.Email = email
	}
	if in.Nom != nil {
		user.Nom = *in.Nom
	}
	if in.Prenom != nil {
		user.Prenom = *in.Prenom
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Delete elimina un usuario y, en cascada, sus clientes. Nadie puede eliminar su propia cuenta.
func (uc *UserUseCase) Delete(ctx context.Context, actor entity.Principal, id string) error {
	if actor.UserID == id {
		return domain.ErrCannotDeleteSelf
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// ToUserResponse convierte la entidad en su salida pública (sin hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:                u.ID,
		Email:             u.Email,
		Nom:               u.Nom,
		Prenom:            u.Prenom,
		DisplayName:       u.FullName(),
		RememberCreatedAt: u.RememberCreatedAt,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}
