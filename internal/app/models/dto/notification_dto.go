package dto

import (
	"strconv"
	"time"

	"github.com/namansharma28/gravitas-backend/internal/app/models"
)

// NotificationResponse is the public view of a notification
type NotificationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NotificationListResponse carries a user's newest notifications together
// with their unread count.
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}

// NewNotificationResponse maps a notification model to its public shape
func NewNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          strconv.FormatInt(n.ID, 10),
		Title:       n.Title,
		Description: n.Description,
		Type:        string(n.Type),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
