package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
	pkgjwt "github.com/sanfelipe/obras-api/pkg/jwt"
)

// AuthUseCase casos de uso de autenticación: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   *pkgjwt.Manager
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, tokens *pkgjwt.Manager) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, tokens: tokens}
}

// Register crea un usuario: valida unicidad de username/email/DNI, hashea el
// password con bcrypt y persiste. Solo MODERADOR y ADMIN_OBRA pueden registrar.
// Devuelve ErrDuplicate si alguno de los campos únicos ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest, creatorID string, creatorRole entity.Role) (*dto.UserResponse, error) {
	if !creatorRole.CanRegisterUsers() {
		return nil, domain.ErrForbidden
	}
	if in.Username == "" || in.Password == "" || in.FullName == "" || in.Email == "" || in.DNI == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	role := entity.Role(in.Role)
	if in.Role == "" {
		role = entity.RoleTrabajador
	}
	if !role.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	exists, err := uc.userRepo.ExistsByUniqueFields(ctx, in.Username, in.Email, in.DNI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     in.Username,
		PasswordHash: string(hash),
		FullName:     in.FullName,
		Role:         role,
		Area:         in.Area,
		DNI:          in.DNI,
		Age:          in.Age,
		Gender:       in.Gender,
		Phone:        in.Phone,
		Email:        in.Email,
		Address:      in.Address,
		IsActive:     true,
		CreatedBy:    creatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// Login verifica username/password y genera el par de tokens.
// Usuario desconocido y password incorrecto colapsan en ErrInvalidCredentials
// (sin filtrar cuál falló); cuenta desactivada se reporta como ErrUserInactive.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	access, err := uc.tokens.GenerateAccess(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := uc.tokens.GenerateRefresh(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		User:         *ToUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh valida el refresh token, verifica que el usuario siga existiendo y
// activo, y emite un nuevo access token.
func (uc *AuthUseCase) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	claims, err := uc.tokens.Verify(refreshToken, pkgjwt.KindRefresh)
	if err != nil {
		if errors.Is(err, pkgjwt.ErrExpired) || errors.Is(err, pkgjwt.ErrInvalid) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrUserInactive
	}
	access, err := uc.tokens.GenerateAccess(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &dto.RefreshResponse{AccessToken: access}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad al DTO de salida (sin el hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		FullName:     u.FullName,
		Role:         string(u.Role),
		Area:         u.Area,
		DNI:          u.DNI,
		Age:          u.Age,
		Gender:       u.Gender,
		Phone:        u.Phone,
		Email:        u.Email,
		Address:      u.Address,
		ProfilePhoto: u.ProfilePhoto,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
