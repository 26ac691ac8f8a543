package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByFandom(ctx context.Context, fandomID int64, page, pageSize int) ([]models.Post, int64, error)
	Delete(ctx context.Context, id int64, authorID string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ListByFandom(ctx context.Context, fandomID int64, page, pageSize int) ([]models.Post, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Post{}).Where("fandom_id = ?", fandomID)
	return countAndFind[models.Post](tx, "created_at DESC, id DESC", page, pageSize, "Author")
}

// Delete removes a post only if authorID wrote it
func (r *postRepository) Delete(ctx context.Context, id int64, authorID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND author_id = ?", id, authorID).
		Delete(&models.Post{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
