package usecase

import (
	"context"
	"time"

	"github.com/sanfelipe/obras-api/internal/application/dto"
	"github.com/sanfelipe/obras-api/internal/domain/entity"
	"github.com/sanfelipe/obras-api/internal/domain/repository"
)

// NotificationUseCase consulta y marcado de lectura de notificaciones.
// La escritura ocurre como efecto de los casos de uso de gastos y obras;
// aquí solo se leen y se marcan como leídas.
type NotificationUseCase struct {
	repo repository.NotificationRepository
}

// NewNotificationUseCase construye el caso de uso.
func NewNotificationUseCase(repo repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{repo: repo}
}

// ListByUser notificaciones del usuario autenticado con contador de no leídas.
func (uc *NotificationUseCase) ListByUser(ctx context.Context, userID string, onlyUnread bool, page dto.PageRequest) (*dto.NotificationListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByUser(ctx, userID, onlyUnread, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		out = append(out, toNotificationResponse(n, now))
	}
	return &dto.NotificationListResponse{Unread: unread, Data: out}, nil
}

// MarkRead marca una notificación propia como leída.
func (uc *NotificationUseCase) MarkRead(ctx context.Context, id, userID string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

func toNotificationResponse(n *entity.Notification, now time.Time) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:             n.ID,
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		RelatedExpense: n.RelatedExpense,
		RelatedProject: n.RelatedProject,
		IsRead:         n.IsRead,
		RelativeTime:   n.RelativeAge(now),
		CreatedAt:      n.CreatedAt,
	}
}
