package dto

import "time"

// NotificationResponse salida de una notificación, con antigüedad legible.
type NotificationResponse struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	RelatedExpense string    `json:"relatedExpense,omitempty"`
	RelatedProject string    `json:"relatedProject,omitempty"`
	IsRead         bool      `json:"isRead"`
	RelativeTime   string    `json:"relativeTime"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NotificationListResponse listado con contador de no leídas.
type NotificationListResponse struct {
	Unread int                    `json:"unread"`
	Data   []NotificationResponse `json:"data"`
}
