package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/sanfelipe/obras-api/pkg/jwt"
)

const (
	testAccessSecret  = "access-secret-para-tests"
	testRefreshSecret = "refresh-secret-para-tests"
	testIssuer        = "obras-api-test"
	testUserID        = "00000000-0000-0000-0000-000000000001"
)

func newTestManager() *pkgjwt.Manager {
	return pkgjwt.NewManager(testAccessSecret, testRefreshSecret, testIssuer, 60, 120)
}

func TestManager_GenerarYVerificarAccessToken(t *testing.T) {
	m := newTestManager()

	tok, err := m.GenerateAccess(testUserID, "jperez", "MODERADOR")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.Verify(tok, pkgjwt.KindAccess)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "jperez", claims.Username)
	assert.Equal(t, "MODERADOR", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestManager_GenerarYVerificarRefreshToken(t *testing.T) {
	m := newTestManager()

	tok, err := m.GenerateRefresh(testUserID, "jperez", "TRABAJADOR")
	require.NoError(t, err)

	claims, err := m.Verify(tok, pkgjwt.KindRefresh)
	require.NoError(t, err)
	assert.Equal(t, "TRABAJADOR", claims.Role)
}

// Un refresh token no debe pasar como access token: los secretos son distintos.
func TestManager_RefreshNoSirveComoAccess(t *testing.T) {
	m := newTestManager()

	tok, err := m.GenerateRefresh(testUserID, "jperez", "TRABAJADOR")
	require.NoError(t, err)

	_, err = m.Verify(tok, pkgjwt.KindAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

// Mismo secreto para ambos tipos: el claim "kind" sigue bloqueando el cruce.
func TestManager_KindDistingueTokensConMismoSecreto(t *testing.T) {
	m := pkgjwt.NewManager("mismo-secreto", "mismo-secreto", testIssuer, 60, 120)

	tok, err := m.GenerateAccess(testUserID, "jperez", "CONTABILIDAD")
	require.NoError(t, err)

	_, err = m.Verify(tok, pkgjwt.KindRefresh)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestManager_TokenExpirado_RetornaErrExpired(t *testing.T) {
	// Expiración -1 minuto (ya vencido)
	m := pkgjwt.NewManager(testAccessSecret, testRefreshSecret, testIssuer, -1, -1)

	tok, err := m.GenerateAccess(testUserID, "jperez", "MODERADOR")
	require.NoError(t, err)

	_, err = m.Verify(tok, pkgjwt.KindAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrExpired)
}

func TestManager_SecretIncorrecto_RetornaErrInvalid(t *testing.T) {
	m := newTestManager()
	otro := pkgjwt.NewManager("otro-secreto-completamente-distinto", testRefreshSecret, testIssuer, 60, 120)

	tok, err := m.GenerateAccess(testUserID, "jperez", "MODERADOR")
	require.NoError(t, err)

	_, err = otro.Verify(tok, pkgjwt.KindAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}

func TestManager_TokenMalformado_RetornaErrInvalid(t *testing.T) {
	m := newTestManager()

	_, err := m.Verify("token.invalido.aqui", pkgjwt.KindAccess)
	assert.ErrorIs(t, err, pkgjwt.ErrInvalid)
}
