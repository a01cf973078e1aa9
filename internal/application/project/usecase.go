package project

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sanfelipe/obras-api/internal/application/auth"
	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// codeRe formato del código de obra: mayúsculas, dígitos y guiones.
var codeRe = regexp.MustCompile(`^[A-Z0-9-]+$`)

// ProjectUseCase casos de uso de obras: creación, listado según rol,
// asignaciones de equipo y consulta del equipo.
type ProjectUseCase struct {
	projectRepo    repository.ProjectRepository
	assignmentRepo repository.AssignmentRepository
	userRepo       repository.UserRepository
	notifRepo      repository.NotificationRepository
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	projectRepo repository.ProjectRepository,
	assignmentRepo repository.AssignmentRepository,
	userRepo repository.UserRepository,
	notifRepo repository.NotificationRepository,
) *ProjectUseCase {
	return &ProjectUseCase{
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		userRepo:       userRepo,
		notifRepo:      notifRepo,
	}
}

// Create crea una obra. Solo MODERADOR. El código se normaliza a mayúsculas;
// la unicidad la garantiza el constraint de la DB (ErrDuplicate).
func (uc *ProjectUseCase) Create(ctx context.Context, in dto.CreateProjectRequest, creatorID string, creatorRole entity.Role) (*dto.ProjectResponse, error) {
	if creatorRole != entity.RoleModerador {
		return nil, domain.ErrForbidden
	}
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if in.Name == "" || code == "" || in.Location == "" || in.Description == "" {
		return nil, domain.ErrInvalidInput
	}
	if !codeRe.MatchString(code) {
		return nil, domain.ErrInvalidInput
	}
	if in.Budget.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.StartDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.EndDate != nil && !in.EndDate.After(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Project{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Code:         code,
		Location:     in.Location,
		Description:  in.Description,
		Budget:       in.Budget,
		CurrentSpent: decimal.Zero,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       entity.ProjectStatusActivo,
		CreatedBy:    creatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.projectRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProjectResponse(p), nil
}

// ListVisible obras visibles para el usuario: MODERADOR y CONTABILIDAD ven
// todas; el resto solo aquellas con asignación activa. Más recientes primero.
func (uc *ProjectUseCase) ListVisible(ctx context.Context, userID string, role entity.Role) ([]dto.ProjectResponse, error) {
	var (
		projects []*entity.Project
		err      error
	)
	if role.CanViewAll() {
		projects, err = uc.projectRepo.ListAll(ctx)
	} else {
		var ids []string
		ids, err = uc.assignmentRepo.ListProjectIDsByUser(ctx, userID, "")
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return []dto.ProjectResponse{}, nil
		}
		projects, err = uc.projectRepo.ListByIDs(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, *ToProjectResponse(p))
	}
	return out, nil
}

// Assign asigna un usuario a una obra con un rol de obra y notifica al asignado.
// Falla con ErrNotFound si la obra o el usuario no existen, ErrForbidden si el
// asignador no es MODERADOR ni ADMINISTRADOR activo de la obra, y ErrConflict
// si ya hay una asignación activa para el par (obra, usuario).
func (uc *ProjectUseCase) Assign(ctx context.Context, projectID string, in dto.AssignUserRequest, assignerID string, assignerRole entity.Role) (*dto.AssignmentResponse, error) {
	roleInProject := entity.ProjectRole(in.RoleInProject)
	if in.UserID == "" || !roleInProject.IsValid() {
		return nil, domain.ErrInvalidInput
	}

	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	if err := uc.requireProjectAdmin(ctx, projectID, assignerID, assignerRole); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrNotFound
	}

	existing, err := uc.assignmentRepo.GetActive(ctx, projectID, in.UserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}

	now := time.Now()
	a := &entity.ProjectAssignment{
		ID:            uuid.New().String(),
		ProjectID:     projectID,
		UserID:        in.UserID,
		RoleInProject: roleInProject,
		AssignedBy:    assignerID,
		AssignedAt:    now,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.assignmentRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	notifType := entity.NotifAsignacionObra
	title := "Asignado a obra"
	if roleInProject == entity.ProjectRoleAdministrador {
		notifType = entity.NotifAsignacionAdministrador
		title = "Asignado como administrador"
	}
	notif := &entity.Notification{
		ID:             uuid.New().String(),
		UserID:         in.UserID,
		Type:           notifType,
		Title:          title,
		Message:        "Fuiste asignado a la obra " + project.Name + " (" + project.Code + ")",
		RelatedProject: projectID,
		CreatedAt:      now,
	}
	if err := uc.notifRepo.Create(ctx, notif); err != nil {
		return nil, err
	}

	return toAssignmentResponse(a), nil
}

// RemoveAssignment desactiva la asignación activa del usuario en la obra
// (baja lógica con RemovedAt). Mismos permisos que Assign.
func (uc *ProjectUseCase) RemoveAssignment(ctx context.Context, projectID, userID, actorID string, actorRole entity.Role) error {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return domain.ErrNotFound
	}
	if err := uc.requireProjectAdmin(ctx, projectID, actorID, actorRole); err != nil {
		return err
	}
	existing, err := uc.assignmentRepo.GetActive(ctx, projectID, userID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.assignmentRepo.Deactivate(ctx, projectID, userID, time.Now())
}

// Team equipo activo de la obra con los datos de cada usuario.
func (uc *ProjectUseCase) Team(ctx context.Context, projectID string) ([]dto.TeamMemberResponse, error) {
	project, err := uc.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}

	assignments, err := uc.assignmentRepo.ListActiveByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TeamMemberResponse, 0, len(assignments))
	for _, a := range assignments {
		user, err := uc.userRepo.GetByID(ctx, a.UserID)
		if err != nil {
			return nil, err
		}
		member := dto.TeamMemberResponse{Assignment: *toAssignmentResponse(a)}
		if user != nil {
			member.User = *auth.ToUserResponse(user)
		}
		out = append(out, member)
	}
	return out, nil
}

// requireProjectAdmin verifica que el actor sea MODERADOR o tenga asignación
// ADMINISTRADOR activa en la obra.
func (uc *ProjectUseCase) requireProjectAdmin(ctx context.Context, projectID, actorID string, actorRole entity.Role) error {
	if actorRole == entity.RoleModerador {
		return nil
	}
	a, err := uc.assignmentRepo.GetActive(ctx, projectID, actorID)
	if err != nil {
		return err
	}
	if a == nil || a.RoleInProject != entity.ProjectRoleAdministrador {
		return domain.ErrForbidden
	}
	return nil
}

// ToProjectResponse mapea la entidad al DTO de salida.
func ToProjectResponse(p *entity.Project) *dto.ProjectResponse {
	if p == nil {
		return nil
	}
	return &dto.ProjectResponse{
		ID:                    p.ID,
		Name:                  p.Name,
		Code:                  p.Code,
		Location:              p.Location,
		Description:           p.Description,
		Budget:                p.Budget,
		CurrentSpent:          p.CurrentSpent,
		BudgetUsagePercentage: p.BudgetUsagePercentage(),
		IsBudgetExceeded:      p.IsBudgetExceeded(),
		StartDate:             p.StartDate,
		EndDate:               p.EndDate,
		Status:                p.Status,
		CreatedBy:             p.CreatedBy,
		CreatedAt:             p.CreatedAt,
	}
}

func toAssignmentResponse(a *entity.ProjectAssignment) *dto.AssignmentResponse {
	return &dto.AssignmentResponse{
		ID:            a.ID,
		ProjectID:     a.ProjectID,
		UserID:        a.UserID,
		RoleInProject: string(a.RoleInProject),
		AssignedBy:    a.AssignedBy,
		AssignedAt:    a.AssignedAt,
		RemovedAt:     a.RemovedAt,
		IsActive:      a.IsActive,
	}
}
