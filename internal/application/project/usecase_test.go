package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/application/project"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProjectRepo struct {
	items map[string]*entity.Project
	codes map[string]bool
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{items: map[string]*entity.Project{}, codes: map[string]bool{}}
}

func (r *fakeProjectRepo) Create(_ context.Context, p *entity.Project) error {
	if r.codes[p.Code] {
		return domain.ErrDuplicate
	}
	r.codes[p.Code] = true
	r.items[p.ID] = p
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*entity.Project, error) {
	return r.items[id], nil
}

func (r *fakeProjectRepo) ListAll(_ context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, p := range r.items {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProjectRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Project, error) {
	var out []*entity.Project
	for _, id := range ids {
		if p, ok := r.items[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) IncrementSpent(_ context.Context, projectID string, amount decimal.Decimal) error {
	p, ok := r.items[projectID]
	if !ok {
		return domain.ErrNotFound
	}
	p.CurrentSpent = p.CurrentSpent.Add(amount)
	return nil
}

type fakeAssignmentRepo struct {
	items []*entity.ProjectAssignment
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *entity.ProjectAssignment) error {
	for _, e := range r.items {
		if e.ProjectID == a.ProjectID && e.UserID == a.UserID && e.IsActive {
			return domain.ErrConflict
		}
	}
	r.items = append(r.items, a)
	return nil
}

func (r *fakeAssignmentRepo) GetActive(_ context.Context, projectID, userID string) (*entity.ProjectAssignment, error) {
	for _, a := range r.items {
		if a.ProjectID == projectID && a.UserID == userID && a.IsActive {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAssignmentRepo) ListActiveByProject(_ context.Context, projectID string) ([]*entity.ProjectAssignment, error) {
	var out []*entity.ProjectAssignment
	for _, a := range r.items {
		if a.ProjectID == projectID && a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListActiveAdmins(_ context.Context, projectID string) ([]*entity.ProjectAssignment, error) {
	var out []*entity.ProjectAssignment
	for _, a := range r.items {
		if a.ProjectID == projectID && a.IsActive && a.RoleInProject == entity.ProjectRoleAdministrador {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListProjectIDsByUser(_ context.Context, userID string, role entity.ProjectRole) ([]string, error) {
	var out []string
	for _, a := range r.items {
		if a.UserID == userID && a.IsActive && (role == "" || a.RoleInProject == role) {
			out = append(out, a.ProjectID)
		}
	}
	return out, nil
}

func (r *fakeAssignmentRepo) Deactivate(_ context.Context, projectID, userID string, removedAt time.Time) error {
	for _, a := range r.items {
		if a.ProjectID == projectID && a.UserID == userID && a.IsActive {
			a.IsActive = false
			a.RemovedAt = &removedAt
			return nil
		}
	}
	return domain.ErrNotFound
}

type fakeUserRepo struct {
	items map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{items: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.items[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.items[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.items {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUniqueFields(_ context.Context, _, _, _ string) (bool, error) {
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.items {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = false
	return nil
}

type fakeNotifRepo struct {
	items []*entity.Notification
}

func (r *fakeNotifRepo) Create(_ context.Context, n *entity.Notification) error {
	r.items = append(r.items, n)
	return nil
}

func (r *fakeNotifRepo) ListByUser(_ context.Context, userID string, onlyUnread bool, _, _ int) ([]*entity.Notification, error) {
	var out []*entity.Notification
	for _, n := range r.items {
		if n.UserID == userID && (!onlyUnread || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotifRepo) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range r.items {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeNotifRepo) CountUnread(_ context.Context, userID string) (int, error) {
	count := 0
	for _, n := range r.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc       *project.ProjectUseCase
	projects *fakeProjectRepo
	assigns  *fakeAssignmentRepo
	users    *fakeUserRepo
	notifs   *fakeNotifRepo

	moderadorID string
	adminObra   *entity.User
	trabajador  *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	projects := newFakeProjectRepo()
	assigns := &fakeAssignmentRepo{}
	users := newFakeUserRepo()
	notifs := &fakeNotifRepo{}

	adminObra := &entity.User{
		ID: uuid.New().String(), Username: "mgarcia", FullName: "María García",
		Role: entity.RoleAdminObra, IsActive: true,
	}
	trabajador := &entity.User{
		ID: uuid.New().String(), Username: "jperez", FullName: "Juan Pérez",
		Role: entity.RoleTrabajador, IsActive: true,
	}
	users.items[adminObra.ID] = adminObra
	users.items[trabajador.ID] = trabajador

	return &fixture{
		uc:          project.NewProjectUseCase(projects, assigns, users, notifs),
		projects:    projects,
		assigns:     assigns,
		users:       users,
		notifs:      notifs,
		moderadorID: uuid.New().String(),
		adminObra:   adminObra,
		trabajador:  trabajador,
	}
}

func validCreate() dto.CreateProjectRequest {
	return dto.CreateProjectRequest{
		Name:        "Edificio San Felipe",
		Code:        "obr-2025-001",
		Location:    "Lima",
		Description: "Torre residencial de 12 pisos",
		Budget:      decimal.NewFromInt(500000),
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) createProject(t *testing.T) *dto.ProjectResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), validCreate(), f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NormalizaCodigoAMayusculas(t *testing.T) {
	f := newFixture(t)

	out := f.createProject(t)
	assert.Equal(t, "OBR-2025-001", out.Code)
	assert.Equal(t, entity.ProjectStatusActivo, out.Status)
	assert.True(t, out.CurrentSpent.IsZero())
}

func TestCreate_SoloModerador(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Create(context.Background(), validCreate(), f.adminObra.ID, entity.RoleAdminObra)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreate_CodigoDuplicado_ErrDuplicate(t *testing.T) {
	f := newFixture(t)
	f.createProject(t)

	_, err := f.uc.Create(context.Background(), validCreate(), f.moderadorID, entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreate_FechaFinAnteriorAlInicio_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	in := validCreate()
	end := in.StartDate.AddDate(0, -1, 0)
	in.EndDate = &end
	_, err := f.uc.Create(context.Background(), in, f.moderadorID, entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PresupuestoNegativo_ErrInvalidInput(t *testing.T) {
	f := newFixture(t)

	in := validCreate()
	in.Budget = decimal.NewFromInt(-1)
	_, err := f.uc.Create(context.Background(), in, f.moderadorID, entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Assign / RemoveAssignment
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_ModeradorAsignaYNotifica(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	out, err := f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	assert.True(t, out.IsActive)
	assert.Equal(t, "TRABAJADOR", out.RoleInProject)

	require.Len(t, f.notifs.items, 1)
	assert.Equal(t, entity.NotifAsignacionObra, f.notifs.items[0].Type)
	assert.Equal(t, f.trabajador.ID, f.notifs.items[0].UserID)
}

func TestAssign_ComoAdministrador_NotificacionDistinta(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	_, err := f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.adminObra.ID, RoleInProject: "ADMINISTRADOR"},
		f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	require.Len(t, f.notifs.items, 1)
	assert.Equal(t, entity.NotifAsignacionAdministrador, f.notifs.items[0].Type)
}

func TestAssign_AsignacionActivaDuplicada_ErrConflict(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	in := dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"}
	_, err := f.uc.Assign(context.Background(), p.ID, in, f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	_, err = f.uc.Assign(context.Background(), p.ID, in, f.moderadorID, entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAssign_AdminObraSinAsignacionAdministrador_Forbidden(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	// ADMIN_OBRA global pero sin asignación ADMINISTRADOR en esta obra.
	_, err := f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.adminObra.ID, entity.RoleAdminObra)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAssign_AdminObraConAsignacionAdministrador_Permitido(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	_, err := f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.adminObra.ID, RoleInProject: "ADMINISTRADOR"},
		f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	_, err = f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.adminObra.ID, entity.RoleAdminObra)
	assert.NoError(t, err)
}

func TestAssign_UsuarioInactivo_ErrNotFound(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)
	f.trabajador.IsActive = false

	_, err := f.uc.Assign(context.Background(), p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.moderadorID, entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveAssignment_DesactivaYPermiteReasignar(t *testing.T) {
	f := newFixture(t)
	p := f.createProject(t)

	in := dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"}
	_, err := f.uc.Assign(context.Background(), p.ID, in, f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	err = f.uc.RemoveAssignment(context.Background(), p.ID, f.trabajador.ID, f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	// La fila queda con baja lógica, no se borra.
	require.Len(t, f.assigns.items, 1)
	assert.False(t, f.assigns.items[0].IsActive)
	assert.NotNil(t, f.assigns.items[0].RemovedAt)

	// Tras la baja, el par (obra, usuario) puede asignarse de nuevo.
	_, err = f.uc.Assign(context.Background(), p.ID, in, f.moderadorID, entity.RoleModerador)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListVisible / Team
// ──────────────────────────────────────────────────────────────────────────────

func TestListVisible_PorRol(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t)

	otra := validCreate()
	otra.Code = "OBR-2025-002"
	_, err := f.uc.Create(ctx, otra, f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	_, err = f.uc.Assign(ctx, p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	// MODERADOR y CONTABILIDAD ven todas.
	all, err := f.uc.ListVisible(ctx, f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	all, err = f.uc.ListVisible(ctx, uuid.New().String(), entity.RoleContabilidad)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// TRABAJADOR solo la obra asignada.
	mine, err := f.uc.ListVisible(ctx, f.trabajador.ID, entity.RoleTrabajador)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)

	// Sin asignaciones: lista vacía, no error.
	none, err := f.uc.ListVisible(ctx, uuid.New().String(), entity.RoleTrabajador)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTeam_DevuelveAsignacionesConUsuario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createProject(t)

	_, err := f.uc.Assign(ctx, p.ID,
		dto.AssignUserRequest{UserID: f.trabajador.ID, RoleInProject: "TRABAJADOR"},
		f.moderadorID, entity.RoleModerador)
	require.NoError(t, err)

	team, err := f.uc.Team(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, team, 1)
	assert.Equal(t, f.trabajador.ID, team[0].User.ID)
	assert.Equal(t, "TRABAJADOR", team[0].Assignment.RoleInProject)
}

func TestTeam_ObraInexistente_ErrNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Team(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
