package service

import (
	"context"
	"fmt"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID string, postID int64, content string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID int64, userID string, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID int64, userID string) error
	GetPostComments(ctx context.Context, postID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateComment adds a comment to an existing post
func (s *commentService) CreateComment(ctx context.Context, userID string, postID int64, content string) (*dto.CommentResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", postID))
	}

	comment := &models.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// reload with user data
	reloaded, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(reloaded), nil
}

func (s *commentService) UpdateComment(ctx context.Context, commentID int64, userID string, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("comment %d", commentID))
	}

	if comment.UserID != userID {
		return nil, fmt.Errorf("comment %d belongs to another user: %w", commentID, ErrForbidden)
	}

	comment.Edit(content, time.Now())
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID int64, userID string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(err, fmt.Sprintf("comment %d", commentID))
	}
	if comment.UserID != userID {
		return fmt.Errorf("comment %d belongs to another user: %w", commentID, ErrForbidden)
	}
	if err := s.commentRepo.Delete(ctx, commentID, userID); err != nil {
		return notFoundOr(err, fmt.Sprintf("comment %d", commentID))
	}
	return nil
}

func (s *commentService) GetPostComments(ctx context.Context, postID int64, page, pageSize int) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", postID))
	}

	comments, total, err := s.commentRepo.GetByPost(ctx, postID, page, pageSize)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginated(out, int(total), page, pageSize), nil
}
