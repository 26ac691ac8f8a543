package repository

import (
	"context"

	"fandomhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReactionSummary counts likes and dislikes on a post
type ReactionSummary struct {
	Likes    int64
	Dislikes int64
}

type ReactionRepository interface {
	Upsert(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, postID int64, userID string) error
	GetByUserAndPost(ctx context.Context, userID string, postID int64) (*models.Reaction, error)
	Summary(ctx context.Context, postID int64) (*ReactionSummary, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Upsert sets the user's reaction on a post, replacing any previous kind
func (r *reactionRepository) Upsert(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "post_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
		}).
		Create(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, postID int64, userID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Reaction{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reactionRepository) GetByUserAndPost(ctx context.Context, userID string, postID int64) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Summary(ctx context.Context, postID int64) (*ReactionSummary, error) {
	var rows []struct {
		Kind  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("kind, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Group("kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := &ReactionSummary{}
	for _, row := range rows {
		switch row.Kind {
		case models.ReactionLike:
			summary.Likes = row.Count
		case models.ReactionDislike:
			summary.Dislikes = row.Count
		}
	}
	return summary, nil
}
