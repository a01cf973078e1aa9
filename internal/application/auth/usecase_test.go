package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sanfelipe/obras-api/internal/application/auth"
	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/domain"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	pkgjwt "github.com/sanfelipe/obras-api/pkg/jwt"
)

// fakeUserRepo repositorio de usuarios en memoria.
type fakeUserRepo struct {
	byID map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.byID {
		if existing.Username == u.Username || existing.Email == u.Email || existing.DNI == u.DNI {
			return domain.ErrDuplicate
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.byID[id], nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ExistsByUniqueFields(_ context.Context, username, email, dni string) (bool, error) {
	for _, u := range r.byID {
		if u.Username == username || u.Email == email || u.DNI == dni {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *fakeUserRepo) Deactivate(_ context.Context, id string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.IsActive = false
	return nil
}

func newTestUseCase() (*auth.AuthUseCase, *fakeUserRepo, *pkgjwt.Manager) {
	repo := newFakeUserRepo()
	tokens := pkgjwt.NewManager("access-secret", "refresh-secret", "obras-api-test", 60, 120)
	return auth.NewAuthUseCase(repo, tokens), repo, tokens
}

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     "Usuario de Prueba",
		Role:         entity.RoleTrabajador,
		DNI:          "12345678",
		Email:        username + "@example.com",
		IsActive:     active,
	}
	repo.byID[u.ID] = u
	return u
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Username: "nuevo",
		Password: "secreto123",
		FullName: "Nuevo Usuario",
		Role:     "TRABAJADOR",
		DNI:      "87654321",
		Email:    "nuevo@example.com",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_ModeradorCreaUsuario(t *testing.T) {
	uc, repo, _ := newTestUseCase()

	out, err := uc.Register(context.Background(), validRegister(), "creator-id", entity.RoleModerador)
	require.NoError(t, err)

	assert.Equal(t, "nuevo", out.Username)
	assert.Equal(t, "TRABAJADOR", out.Role)
	assert.True(t, out.IsActive)

	stored, _ := repo.GetByUsername(context.Background(), "nuevo")
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto123", stored.PasswordHash, "el password nunca se guarda en claro")
	assert.Equal(t, "creator-id", stored.CreatedBy)
}

func TestRegister_TrabajadorNoPuedeRegistrar(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Register(context.Background(), validRegister(), "x", entity.RoleTrabajador)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Register(context.Background(), validRegister(), "x", entity.RoleContabilidad)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_CamposUnicosDuplicados_ErrDuplicate(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(t, repo, "jperez", "clave123", true)

	in := validRegister()
	in.Username = "jperez" // username ya tomado
	_, err := uc.Register(context.Background(), in, "x", entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestRegister_PasswordCorto_ErrInvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase()

	in := validRegister()
	in.Password = "abc"
	_, err := uc.Register(context.Background(), in, "x", entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RolInvalido_ErrInvalidInput(t *testing.T) {
	uc, _, _ := newTestUseCase()

	in := validRegister()
	in.Role = "SUPERADMIN"
	_, err := uc.Register(context.Background(), in, "x", entity.RoleModerador)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_SinRol_AsumeTrabajador(t *testing.T) {
	uc, _, _ := newTestUseCase()

	in := validRegister()
	in.Role = ""
	out, err := uc.Register(context.Background(), in, "x", entity.RoleModerador)
	require.NoError(t, err)
	assert.Equal(t, "TRABAJADOR", out.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas_EmiteAmbosTokens(t *testing.T) {
	uc, repo, tokens := newTestUseCase()
	u := seedUser(t, repo, "jperez", "clave123", true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "clave123"})
	require.NoError(t, err)

	assert.Equal(t, u.ID, out.User.ID)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)

	// El access token debe validar como access y el refresh como refresh.
	claims, err := tokens.Verify(out.AccessToken, pkgjwt.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = tokens.Verify(out.RefreshToken, pkgjwt.KindRefresh)
	require.NoError(t, err)
}

func TestLogin_UsuarioDesconocidoYPasswordMalo_MismoError(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(t, repo, "jperez", "clave123", true)

	// Usuario que no existe y password incorrecto devuelven la misma señal,
	// sin filtrar cuál de los dos falló.
	_, err1 := uc.Login(context.Background(), dto.LoginRequest{Username: "noexiste", Password: "clave123"})
	_, err2 := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "incorrecta"})

	assert.ErrorIs(t, err1, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, err2, domain.ErrInvalidCredentials)
}

func TestLogin_UsuarioInactivo_ErrUserInactive(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	seedUser(t, repo, "baja", "clave123", false)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "baja", Password: "clave123"})
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refresh
// ──────────────────────────────────────────────────────────────────────────────

func TestRefresh_EmiteNuevoAccessToken(t *testing.T) {
	uc, repo, tokens := newTestUseCase()
	u := seedUser(t, repo, "jperez", "clave123", true)

	refresh, err := tokens.GenerateRefresh(u.ID, u.Username, string(u.Role))
	require.NoError(t, err)

	out, err := uc.Refresh(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := tokens.Verify(out.AccessToken, pkgjwt.KindAccess)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}

func TestRefresh_AccessTokenNoSirve(t *testing.T) {
	uc, repo, tokens := newTestUseCase()
	u := seedUser(t, repo, "jperez", "clave123", true)

	access, err := tokens.GenerateAccess(u.ID, u.Username, string(u.Role))
	require.NoError(t, err)

	_, err = uc.Refresh(context.Background(), access)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefresh_UsuarioDesactivado_ErrUserInactive(t *testing.T) {
	uc, repo, tokens := newTestUseCase()
	u := seedUser(t, repo, "jperez", "clave123", true)

	refresh, err := tokens.GenerateRefresh(u.ID, u.Username, string(u.Role))
	require.NoError(t, err)

	// El usuario se desactiva después de emitido el refresh token.
	u.IsActive = false

	_, err = uc.Refresh(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelvePerfilSinHash(t *testing.T) {
	uc, repo, _ := newTestUseCase()
	u := seedUser(t, repo, "jperez", "clave123", true)

	out, err := uc.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Username, out.Username)
}

func TestMe_UsuarioInexistente_ErrNotFound(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Me(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
