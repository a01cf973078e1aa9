package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

var _ repository.AssignmentRepository = (*AssignmentRepo)(nil)

const assignmentColumns = `id, project_id, user_id, role_in_project, assigned_by,
	assigned_at, removed_at, is_active, created_at, updated_at`

// AssignmentRepo implementación del puerto AssignmentRepository sobre PostgreSQL.
// El índice único parcial sobre (project_id, user_id) WHERE is_active garantiza
// a lo sumo una asignación activa por par.
type AssignmentRepo struct {
	q Querier
}

// NewAssignmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssignmentRepository(q Querier) *AssignmentRepo {
	return &AssignmentRepo{q: q}
}

// Create persiste una asignación nueva.
func (r *AssignmentRepo) Create(ctx context.Context, a *entity.ProjectAssignment) error {
	query := `
		INSERT INTO project_assignments (id, project_id, user_id, role_in_project, assigned_by,
			assigned_at, removed_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.ProjectID, a.UserID, a.RoleInProject, a.AssignedBy,
		a.AssignedAt, a.RemovedAt, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// GetActive asignación activa del usuario en la obra; nil si no hay.
func (r *AssignmentRepo) GetActive(ctx context.Context, projectID, userID string) (*entity.ProjectAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM project_assignments WHERE project_id = $1 AND user_id = $2 AND is_active`
	var a entity.ProjectAssignment
	if err := scanAssignment(r.q.QueryRow(ctx, query, projectID, userID), &a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active assignment: %w", err)
	}
	return &a, nil
}

// ListActiveByProject equipo activo de la obra, más recientes primero.
func (r *AssignmentRepo) ListActiveByProject(ctx context.Context, projectID string) ([]*entity.ProjectAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM project_assignments WHERE project_id = $1 AND is_active ORDER BY assigned_at DESC`
	return r.queryMany(ctx, query, projectID)
}

// ListActiveAdmins asignaciones ADMINISTRADOR activas de la obra.
func (r *AssignmentRepo) ListActiveAdmins(ctx context.Context, projectID string) ([]*entity.ProjectAssignment, error) {
	query := `SELECT ` + assignmentColumns + `
		FROM project_assignments
		WHERE project_id = $1 AND role_in_project = $2 AND is_active ORDER BY assigned_at DESC`
	return r.queryMany(ctx, query, projectID, entity.ProjectRoleAdministrador)
}

// ListProjectIDsByUser IDs de obras con asignación activa del usuario,
// opcionalmente filtradas por rol de obra.
func (r *AssignmentRepo) ListProjectIDsByUser(ctx context.Context, userID string, role entity.ProjectRole) ([]string, error) {
	query := `SELECT project_id FROM project_assignments
		WHERE user_id = $1 AND is_active AND ($2 = '' OR role_in_project = $2)`
	rows, err := r.q.Query(ctx, query, userID, string(role))
	if err != nil {
		return nil, fmt.Errorf("list project ids by user: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Deactivate baja lógica de la asignación activa del par (obra, usuario).
func (r *AssignmentRepo) Deactivate(ctx context.Context, projectID, userID string, removedAt time.Time) error {
	query := `UPDATE project_assignments
		SET is_active = false, removed_at = $3, updated_at = now()
		WHERE project_id = $1 AND user_id = $2 AND is_active`
	tag, err := r.q.Exec(ctx, query, projectID, userID, removedAt)
	if err != nil {
		return fmt.Errorf("deactivate assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AssignmentRepo) queryMany(ctx context.Context, query string, args ...any) ([]*entity.ProjectAssignment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProjectAssignment
	for rows.Next() {
		var a entity.ProjectAssignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func scanAssignment(row pgx.Row, a *entity.ProjectAssignment) error {
	return row.Scan(
		&a.ID, &a.ProjectID, &a.UserID, &a.RoleInProject, &a.AssignedBy,
		&a.AssignedAt, &a.RemovedAt, &a.IsActive, &a.CreatedAt, &a.UpdatedAt,
	)
}
