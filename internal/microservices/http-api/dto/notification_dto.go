package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

// NotificationDto is the wire form pushed to live connections
type NotificationDto struct {
	ID         int64     `json:"id"`
	FandomID   int64     `json:"fandom_id"`
	NotifierID string    `json:"notifier_id"`
	Type       string    `json:"type"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromModelToNotificationDto(n *models.Notification) *NotificationDto {
	return &NotificationDto{
		ID:         n.ID,
		FandomID:   n.FandomID,
		NotifierID: n.NotifierID,
		Type:       n.Type,
		CreatedAt:  n.CreatedAt,
	}
}

// NotificationWithViewedDto merges a notification with one user's overlay row.
// IsViewed is true whenever a row exists; ViewedAt is nil without one.
type NotificationWithViewedDto struct {
	NotificationDto
	IsViewed bool       `json:"is_viewed"`
	IsHidden bool       `json:"is_hidden"`
	ViewedAt *time.Time `json:"viewed_at,omitempty"`
}

// NewNotificationWithViewed composes the read model; viewed may be nil
func NewNotificationWithViewed(n *models.Notification, viewed *models.NotificationViewed) NotificationWithViewedDto {
	out := NotificationWithViewedDto{NotificationDto: *FromModelToNotificationDto(n)}
	if viewed != nil {
		viewedAt := viewed.ViewedAt
		out.IsViewed = true
		out.IsHidden = viewed.IsHidden
		out.ViewedAt = &viewedAt
	}
	return out
}

// BatchStateRequest targets the caller (or UserID when given) with a list of notification ids
type BatchStateRequest struct {
	UserID          string  `json:"user_id"`
	NotificationIDs []int64 `json:"notification_ids" binding:"required,min=1,max=500"`
}

type BatchFailure struct {
	ID     int64  `json:"id"`
	Reason string `json:"reason"`
}

// BatchResult reports per-item outcomes of a viewed-state batch
type BatchResult struct {
	Succeeded []int64        `json:"succeeded"`
	Failed    []BatchFailure `json:"failed"`
}

type UnviewedCountResponse struct {
	Count int64 `json:"count"`
}
