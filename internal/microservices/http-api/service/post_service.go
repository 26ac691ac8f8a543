package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"
)

type PostService interface {
	Create(ctx context.Context, authorID string, fandomID int64, req dto.CreatePostDTO) (*dto.PostResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.PostResponse, error)
	ListByFandom(ctx context.Context, fandomID int64, page, pageSize int) (*dto.Paginated[dto.PostResponse], error)
	Delete(ctx context.Context, id int64, authorID string) error
}

type postService struct {
	postRepo   repository.PostRepository
	fandomRepo repository.FandomRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	fandomRepo repository.FandomRepository,
	notifier Notifier,
	logger *slog.Logger,
) PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &postService{
		postRepo:   postRepo,
		fandomRepo: fandomRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Create stores the post and emits a NewPost notification to the fandom.
// A failed notification does not undo the post.
func (s *postService) Create(ctx context.Context, authorID string, fandomID int64, req dto.CreatePostDTO) (*dto.PostResponse, error) {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}

	post := &models.Post{
		FandomID: fandomID,
		AuthorID: authorID,
		Title:    strings.TrimSpace(req.Title),
		Content:  req.Content,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if _, err := s.notifier.Notify(ctx, fandomID, authorID, models.NotificationNewPost); err != nil {
		s.logger.Error("post_notification_failed",
			"post_id", post.ID,
			"fandom_id", fandomID,
			"error", err)
	}

	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return dto.FromModelToPostResponse(post), nil
	}
	return dto.FromModelToPostResponse(created), nil
}

func (s *postService) GetByID(ctx context.Context, id int64) (*dto.PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("post %d", id))
	}
	return dto.FromModelToPostResponse(post), nil
}

func (s *postService) ListByFandom(ctx context.Context, fandomID int64, page, pageSize int) (*dto.Paginated[dto.PostResponse], error) {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}

	posts, total, err := s.postRepo.ListByFandom(ctx, fandomID, page, pageSize)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, *dto.FromModelToPostResponse(&posts[i]))
	}
	return dto.NewPaginated(out, int(total), page, pageSize), nil
}

func (s *postService) Delete(ctx context.Context, id int64, authorID string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, fmt.Sprintf("post %d", id))
	}
	if post.AuthorID != authorID {
		return fmt.Errorf("only the author can delete post %d: %w", id, ErrForbidden)
	}
	if err := s.postRepo.Delete(ctx, id, authorID); err != nil {
		return notFoundOr(err, fmt.Sprintf("post %d", id))
	}
	return nil
}
