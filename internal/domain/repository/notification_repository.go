package repository

import (
	"context"

	"github.com/sanfelipe/obras-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
// Inserción pura; la única mutación permitida es marcar como leída.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByUser notificaciones del usuario, más recientes primero.
	// Con onlyUnread=true devuelve solo las no leídas.
	ListByUser(ctx context.Context, userID string, onlyUnread bool, limit, offset int) ([]*entity.Notification, error)
	// MarkRead marca como leída si pertenece al usuario; ErrNotFound si no existe o no es suya.
	MarkRead(ctx context.Context, id, userID string) error
	CountUnread(ctx context.Context, userID string) (int, error)
}
