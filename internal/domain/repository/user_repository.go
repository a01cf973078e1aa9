package repository

import (
	"context"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// ExistsByUniqueFields indica si ya hay un usuario con ese username, email o DNI.
	ExistsByUniqueFields(ctx context.Context, username, email, dni string) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	// Deactivate baja lógica: IsActive=false. Nunca se borra la fila.
	Deactivate(ctx context.Context, id string) error
}
