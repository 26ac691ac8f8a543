package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, commentID int64, userID string) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	GetByPost(ctx context.Context, postID int64, page, pageSize int) ([]models.Comment, int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

// Delete a comment (only if user owns it)
func (r *commentRepository) Delete(ctx context.Context, commentID int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", commentID, userID).
		Delete(&models.Comment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetByPost retrieves the comments of a post, oldest first
func (r *commentRepository) GetByPost(ctx context.Context, postID int64, page, pageSize int) ([]models.Comment, int64, error) {
	tx := r.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID)
	return countAndFind[models.Comment](tx, "created_at ASC, id ASC", page, pageSize, "User")
}
