package repository

import (
	"context"
	"time"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// AssignmentRepository define el puerto de persistencia para ProjectAssignment.
// Invariante protegido por índice único parcial: a lo sumo una asignación
// activa por (obra, usuario).
type AssignmentRepository interface {
	Create(ctx context.Context, a *entity.ProjectAssignment) error
	// GetActive asignación activa del usuario en la obra, nil si no hay.
	GetActive(ctx context.Context, projectID, userID string) (*entity.ProjectAssignment, error)
	// ListActiveByProject equipo activo de la obra, más recientes primero.
	ListActiveByProject(ctx context.Context, projectID string) ([]*entity.ProjectAssignment, error)
	// ListActiveAdmins asignaciones ADMINISTRADOR activas de la obra (para fan-out).
	ListActiveAdmins(ctx context.Context, projectID string) ([]*entity.ProjectAssignment, error)
	// ListProjectIDsByUser IDs de obras donde el usuario tiene asignación activa;
	// si role no es vacío, filtra por rol de obra.
	ListProjectIDsByUser(ctx context.Context, userID string, role entity.ProjectRole) ([]string, error)
	// Deactivate baja lógica de la asignación activa: IsActive=false, RemovedAt=removedAt.
	Deactivate(ctx context.Context, projectID, userID string, removedAt time.Time) error
}
