package repository

import (
	"context"
	"time"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ViewedRepository owns the per-user overlay rows. Every write is conflict-aware
// so concurrent calls for the same (notification, user) never create a second row.
type ViewedRepository interface {
	// InsertIfAbsent creates a viewed row; an existing row is left untouched
	InsertIfAbsent(ctx context.Context, notificationID int64, userID string, viewedAt time.Time) error
	// DeleteIfNotHidden removes the row unless it is hidden
	DeleteIfNotHidden(ctx context.Context, notificationID int64, userID string) error
	// UpsertHidden creates the row with viewedAt or flips is_hidden on the existing one
	UpsertHidden(ctx context.Context, notificationID int64, userID string, hidden bool, viewedAt time.Time) error
	Get(ctx context.Context, notificationID int64, userID string) (*models.NotificationViewed, error)
	ListByUser(ctx context.Context, userID string) ([]models.NotificationViewed, error)
}

type viewedRepository struct {
	db *gorm.DB
}

func NewViewedRepository(db *gorm.DB) ViewedRepository {
	return &viewedRepository{db: db}
}

func (r *viewedRepository) InsertIfAbsent(ctx context.Context, notificationID int64, userID string, viewedAt time.Time) error {
	row := &models.NotificationViewed{
		NotificationID: notificationID,
		UserID:         userID,
		ViewedAt:       viewedAt,
		IsHidden:       false,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row).Error
}

func (r *viewedRepository) DeleteIfNotHidden(ctx context.Context, notificationID int64, userID string) error {
	return r.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ? AND is_hidden = ?", notificationID, userID, false).
		Delete(&models.NotificationViewed{}).Error
}

func (r *viewedRepository) UpsertHidden(ctx context.Context, notificationID int64, userID string, hidden bool, viewedAt time.Time) error {
	row := &models.NotificationViewed{
		NotificationID: notificationID,
		UserID:         userID,
		ViewedAt:       viewedAt,
		IsHidden:       hidden,
	}
	// viewed_at is not in the update list, so an existing row keeps its first view time
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"is_hidden"}),
		}).
		Create(row).Error
}

func (r *viewedRepository) Get(ctx context.Context, notificationID int64, userID string) (*models.NotificationViewed, error) {
	var row models.NotificationViewed
	err := r.db.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *viewedRepository) ListByUser(ctx context.Context, userID string) ([]models.NotificationViewed, error) {
	var rows []models.NotificationViewed
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}
