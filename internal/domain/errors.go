package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los devuelven
// tal cual y la capa HTTP los traduce a códigos de estado.
var (
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUserInactive       = errors.New("usuario inactivo")
	ErrInvalidState       = errors.New("transición de estado no permitida")
	ErrUpload             = errors.New("error al subir el comprobante")
	ErrStorage            = errors.New("almacenamiento no disponible")
)
