package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SubscriptionRepository tracks which users are members of which fandoms
type SubscriptionRepository interface {
	Subscribe(ctx context.Context, userID string, fandomID int64) error
	Unsubscribe(ctx context.Context, userID string, fandomID int64) error
	IsSubscribed(ctx context.Context, userID string, fandomID int64) (bool, error)
	GetUserIDsByFandomID(ctx context.Context, fandomID int64) ([]string, error)
	GetFandomIDsByUserID(ctx context.Context, userID string) ([]int64, error)
	ListByUser(ctx context.Context, userID string) ([]models.FandomSubscription, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// Subscribe is idempotent; a second call for the same pair is a no-op
func (r *subscriptionRepository) Subscribe(ctx context.Context, userID string, fandomID int64) error {
	sub := &models.FandomSubscription{UserID: userID, FandomID: fandomID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "fandom_id"}},
			DoNothing: true,
		}).
		Create(sub).Error
}

func (r *subscriptionRepository) Unsubscribe(ctx context.Context, userID string, fandomID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND fandom_id = ?", userID, fandomID).
		Delete(&models.FandomSubscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *subscriptionRepository) IsSubscribed(ctx context.Context, userID string, fandomID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FandomSubscription{}).
		Where("user_id = ? AND fandom_id = ?", userID, fandomID).
		Count(&count).Error
	return count > 0, err
}

// GetUserIDsByFandomID returns all members of a fandom
func (r *subscriptionRepository) GetUserIDsByFandomID(ctx context.Context, fandomID int64) ([]string, error) {
	var userIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.FandomSubscription{}).
		Where("fandom_id = ?", fandomID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *subscriptionRepository) GetFandomIDsByUserID(ctx context.Context, userID string) ([]int64, error) {
	var fandomIDs []int64
	err := r.db.WithContext(ctx).
		Model(&models.FandomSubscription{}).
		Where("user_id = ?", userID).
		Pluck("fandom_id", &fandomIDs).Error
	return fandomIDs, err
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]models.FandomSubscription, error) {
	var subs []models.FandomSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Fandom").
		Order("subscribed_at DESC").
		Find(&subs).Error
	return subs, err
}
