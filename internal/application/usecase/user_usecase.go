package usecase

import (
	"context"

	"github.com/sanfelipe/obras-api/internal/application/auth"
	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// UserUseCase consultas y baja lógica de usuarios.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List usuarios paginados. Solo MODERADOR y ADMIN_OBRA.
func (uc *UserUseCase) List(ctx context.Context, page dto.PageRequest, actorRole entity.Role) ([]dto.UserResponse, error) {
	if !actorRole.CanRegisterUsers() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Deactivate baja lógica de un usuario. Solo MODERADOR; nunca se borra la fila.
func (uc *UserUseCase) Deactivate(ctx context.Context, id, actorID string, actorRole entity.Role) error {
	if actorRole != entity.RoleModerador {
		return domain.ErrForbidden
	}
	if id == actorID {
		// Un MODERADOR no puede desactivarse a sí mismo.
		return domain.ErrConflict
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(ctx, id)
}
