package service

import (
	"context"
	"errors"
	"fmt"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type ReactionService interface {
	// Set records a like or dislike; a second call replaces the previous kind
	Set(ctx context.Context, userID string, postID int64, kind string) (*dto.ReactionSummaryResponse, error)
	Remove(ctx context.Context, userID string, postID int64) error
	Summary(ctx context.Context, userID string, postID int64) (*dto.ReactionSummaryResponse, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
}

func NewReactionService(reactionRepo repository.ReactionRepository, postRepo repository.PostRepository) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
	}
}

func (s *reactionService) Set(ctx context.Context, userID string, postID int64, kind string) (*dto.ReactionSummaryResponse, error) {
	if kind != models.ReactionLike && kind != models.ReactionDislike {
		return nil, fmt.Errorf("unknown reaction %q: %w", kind, ErrValidation)
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", postID))
	}

	reaction := &models.Reaction{
		UserID: userID,
		PostID: postID,
		Kind:   kind,
	}
	if err := s.reactionRepo.Upsert(ctx, reaction); err != nil {
		return nil, err
	}

	return s.Summary(ctx, userID, postID)
}

func (s *reactionService) Remove(ctx context.Context, userID string, postID int64) error {
	if err := s.reactionRepo.Delete(ctx, postID, userID); err != nil {
		return notFoundOr(err, fmt.Sprintf("reaction on post %d", postID))
	}
	return nil
}

func (s *reactionService) Summary(ctx context.Context, userID string, postID int64) (*dto.ReactionSummaryResponse, error) {
	summary, err := s.reactionRepo.Summary(ctx, postID)
	if err != nil {
		return nil, err
	}

	out := &dto.ReactionSummaryResponse{
		PostID:   postID,
		Likes:    summary.Likes,
		Dislikes: summary.Dislikes,
	}

	mine, err := s.reactionRepo.GetByUserAndPost(ctx, userID, postID)
	switch {
	case err == nil:
		out.Mine = mine.Kind
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return out, nil
}
