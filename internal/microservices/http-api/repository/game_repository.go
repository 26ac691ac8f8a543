package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	List(ctx context.Context, query string, page, pageSize int) ([]models.Game, int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// List returns games ordered by title, optionally filtered by a title substring
func (r *gameRepository) List(ctx context.Context, query string, page, pageSize int) ([]models.Game, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Game{})
	if query != "" {
		tx = tx.Where("title ILIKE ?", "%"+query+"%")
	}
	return countAndFind[models.Game](tx, "title ASC", page, pageSize)
}
