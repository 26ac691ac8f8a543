package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type FandomRepository interface {
	Create(ctx context.Context, fandom *models.Fandom) error
	GetByID(ctx context.Context, id int64) (*models.Fandom, error)
	ListByGame(ctx context.Context, gameID int64) ([]models.Fandom, error)
	Delete(ctx context.Context, id int64) error
}

type fandomRepository struct {
	db *gorm.DB
}

func NewFandomRepository(db *gorm.DB) FandomRepository {
	return &fandomRepository{db: db}
}

func (r *fandomRepository) Create(ctx context.Context, fandom *models.Fandom) error {
	return r.db.WithContext(ctx).Create(fandom).Error
}

func (r *fandomRepository) GetByID(ctx context.Context, id int64) (*models.Fandom, error) {
	var fandom models.Fandom
	if err := r.db.WithContext(ctx).Preload("Game").First(&fandom, id).Error; err != nil {
		return nil, err
	}
	return &fandom, nil
}

func (r *fandomRepository) ListByGame(ctx context.Context, gameID int64) ([]models.Fandom, error) {
	var fandoms []models.Fandom
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("name ASC").
		Find(&fandoms).Error
	return fandoms, err
}

// Delete removes the fandom; posts, events, subscriptions and notifications
// go with it through ON DELETE CASCADE
func (r *fandomRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Fandom{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
