package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind distingue access token (corta duración) de refresh token (larga duración).
// Cada tipo se firma con su propio secreto para que un refresh token nunca
// pase como access token y viceversa.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// Errores de verificación. La expiración es el único mecanismo de invalidación:
// no hay lista de revocación.
var (
	ErrExpired = errors.New("jwt: token expirado")
	ErrInvalid = errors.New("jwt: token inválido")
)

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// Se añaden Username y Role para que el middleware RBAC pueda tomar decisiones
// sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"` // MODERADOR | ADMIN_OBRA | TRABAJADOR | CONTABILIDAD
	Kind     string `json:"kind"` // access | refresh
}

// Manager emite y verifica tokens. Construir uno por aplicación con NewManager.
type Manager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
}

// NewManager construye el emisor/verificador de tokens.
// accessExpMinutes por defecto 1440 (24h); refreshExpMinutes 10080 (7d).
func NewManager(accessSecret, refreshSecret, issuer string, accessExpMinutes, refreshExpMinutes int) *Manager {
	return &Manager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     time.Duration(accessExpMinutes) * time.Minute,
		refreshTTL:    time.Duration(refreshExpMinutes) * time.Minute,
		issuer:        issuer,
	}
}

// GenerateAccess genera un access token firmado que incluye userID, username y role.
func (m *Manager) GenerateAccess(userID, username, role string) (string, error) {
	return m.generate(userID, username, role, KindAccess, m.accessSecret, m.accessTTL)
}

// GenerateRefresh genera un refresh token de larga duración.
func (m *Manager) GenerateRefresh(userID, username, role string) (string, error) {
	return m.generate(userID, username, role, KindRefresh, m.refreshSecret, m.refreshTTL)
}

func (m *Manager) generate(userID, username, role string, kind Kind, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("jwt: secret vacío para token %s", kind)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		Role:     role,
		Kind:     string(kind),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// Verify valida firma, expiración y tipo del token, y devuelve los claims.
// Retorna ErrExpired si venció y ErrInvalid en cualquier otro fallo
// (firma incorrecta, tipo equivocado, claims malformados).
func (m *Manager) Verify(tokenString string, kind Kind) (*Claims, error) {
	secret := m.accessSecret
	if kind == KindRefresh {
		secret = m.refreshSecret
	}
	if len(secret) == 0 {
		return nil, fmt.Errorf("jwt: secret vacío para token %s", kind)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !token.Valid || claims.Kind != string(kind) {
		return nil, ErrInvalid
	}
	return claims, nil
}
