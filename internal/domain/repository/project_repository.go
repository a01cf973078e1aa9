package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// ListAll obras ordenadas por creación descendente (MODERADOR/CONTABILIDAD).
	ListAll(ctx context.Context) ([]*entity.Project, error)
	// ListByIDs obras del conjunto dado, mismo orden descendente.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Project, error)
	// IncrementSpent suma amount a current_spent de forma atómica en la DB
	// (UPDATE ... SET current_spent = current_spent + $2). Usado dentro de la
	// transacción de aprobación de gastos.
	IncrementSpent(ctx context.Context, projectID string, amount decimal.Decimal) error
}
