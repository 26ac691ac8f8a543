package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	ListByFandom(ctx context.Context, fandomID int64) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// ListByFandom returns events soonest first
func (r *eventRepository) ListByFandom(ctx context.Context, fandomID int64) ([]models.Event, error) {
	var events []models.Event
	err := r.db.WithContext(ctx).
		Where("fandom_id = ?", fandomID).
		Order("starts_at ASC").
		Find(&events).Error
	return events, err
}
