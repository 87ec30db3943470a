package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestion-clients/internal/application/dto"
	"github.com/jhoicas/gestion-clients/internal/application/usecase"
	"github.com/jhoicas/gestion-clients/internal/domain"
	"github.com/jhoicas/gestion-clients/internal/domain/entity"
	"github.com/jhoicas/gestion-clients/internal/domain/repository"
	"github.com/jhoicas/gestion-clients/pkg/jwt"
)

// MinPasswordLength longitud mínima de password en el registro.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	// RememberMinutes vigencia del token cuando el login pide remember_me (0 = igual a ExpMinutes).
	RememberMinutes int
	Issuer          string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, now: time.Now}
}

// RegisterUser crea un usuario: valida, hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe (comparación exacta, sensible a mayúsculas).
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = strings.TrimSpace(in.Email)
	var bad []string
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		bad = append(bad, "email")
	}
	if len(in.Password) < MinPasswordLength {
		bad = append(bad, "password")
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        in.Email,
		Nom:          in.Nom,
		Prenom:       in.Prenom,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Con remember_me se registra remember_created_at y el token dura RememberMinutes.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	exp := uc.jwtCfg.ExpMinutes
	if in.RememberMe {
		now := uc.now()
		user.RememberCreatedAt = &now
		user.UpdatedAt = now
		if err := uc.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
		if uc.jwtCfg.RememberMinutes > 0 {
			exp = uc.jwtCfg.RememberMinutes
		}
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, exp)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}
