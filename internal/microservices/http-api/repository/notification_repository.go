package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// NotificationRepository stores notifications; rows are never updated
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	// GetVisibleByID returns the notification only if userID is a member of its fandom
	GetVisibleByID(ctx context.Context, userID string, id int64) (*models.Notification, error)
	// ListVisible returns every notification of the fandoms userID belongs to
	ListVisible(ctx context.Context, userID string) ([]models.Notification, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *notificationRepository) GetVisibleByID(ctx context.Context, userID string, id int64) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.WithContext(ctx).
		Joins("JOIN fandom_subscriptions fs ON fs.fandom_id = notifications.fandom_id AND fs.user_id = ?", userID).
		Where("notifications.id = ?", id).
		First(&notification).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *notificationRepository) ListVisible(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Joins("JOIN fandom_subscriptions fs ON fs.fandom_id = notifications.fandom_id AND fs.user_id = ?", userID).
		Order("notifications.created_at DESC, notifications.id DESC").
		Find(&notifications).Error
	return notifications, err
}
