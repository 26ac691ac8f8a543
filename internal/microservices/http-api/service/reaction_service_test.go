package service

import (
	"context"
	"errors"
	"testing"

	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockReactionRepository mocks the ReactionRepository interface
type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Upsert(ctx context.Context, reaction *models.Reaction) error {
	args := m.Called(ctx, reaction)
	return args.Error(0)
}

func (m *MockReactionRepository) Delete(ctx context.Context, postID int64, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *MockReactionRepository) GetByUserAndPost(ctx context.Context, userID string, postID int64) (*models.Reaction, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) Summary(ctx context.Context, postID int64) (*repository.ReactionSummary, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReactionSummary), args.Error(1)
}

func setupReactionService() (ReactionService, *MockReactionRepository, *MockPostRepository) {
	reactions := new(MockReactionRepository)
	posts := new(MockPostRepository)
	return NewReactionService(reactions, posts), reactions, posts
}

func TestReactionSet(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown kind", func(t *testing.T) {
		svc, reactions, posts := setupReactionService()

		_, err := svc.Set(ctx, "u1", 5, "love")
		assert.ErrorIs(t, err, ErrValidation)
		posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		reactions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, reactions, posts := setupReactionService()
		posts.On("GetByID", ctx, int64(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Set(ctx, "u1", 5, models.ReactionLike)
		assert.ErrorIs(t, err, ErrNotFound)
		reactions.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("returns summary with own reaction", func(t *testing.T) {
		svc, reactions, posts := setupReactionService()
		posts.On("GetByID", ctx, int64(5)).Return(&models.Post{ID: 5}, nil)
		reactions.On("Upsert", ctx, mock.MatchedBy(func(r *models.Reaction) bool {
			return r.UserID == "u1" && r.PostID == 5 && r.Kind == models.ReactionDislike
		})).Return(nil)
		reactions.On("Summary", ctx, int64(5)).Return(&repository.ReactionSummary{Likes: 3, Dislikes: 1}, nil)
		reactions.On("GetByUserAndPost", ctx, "u1", int64(5)).
			Return(&models.Reaction{UserID: "u1", PostID: 5, Kind: models.ReactionDislike}, nil)

		got, err := svc.Set(ctx, "u1", 5, models.ReactionDislike)
		require.NoError(t, err)
		assert.Equal(t, int64(5), got.PostID)
		assert.Equal(t, int64(3), got.Likes)
		assert.Equal(t, int64(1), got.Dislikes)
		assert.Equal(t, models.ReactionDislike, got.Mine)
		reactions.AssertExpectations(t)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, reactions, posts := setupReactionService()
		posts.On("GetByID", ctx, int64(5)).Return(&models.Post{ID: 5}, nil)
		reactions.On("Upsert", ctx, mock.Anything).Return(errors.New("connection reset"))

		_, err := svc.Set(ctx, "u1", 5, models.ReactionLike)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
		reactions.AssertNotCalled(t, "Summary", mock.Anything, mock.Anything)
	})
}

func TestReactionRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("removes own reaction", func(t *testing.T) {
		svc, reactions, _ := setupReactionService()
		reactions.On("Delete", ctx, int64(5), "u1").Return(nil)

		require.NoError(t, svc.Remove(ctx, "u1", 5))
		reactions.AssertExpectations(t)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		svc, reactions, _ := setupReactionService()
		reactions.On("Delete", ctx, int64(5), "u1").Return(gorm.ErrRecordNotFound)

		assert.ErrorIs(t, svc.Remove(ctx, "u1", 5), ErrNotFound)
	})
}

func TestReactionSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("no own reaction", func(t *testing.T) {
		svc, reactions, _ := setupReactionService()
		reactions.On("Summary", ctx, int64(5)).Return(&repository.ReactionSummary{Likes: 2}, nil)
		reactions.On("GetByUserAndPost", ctx, "u2", int64(5)).Return(nil, gorm.ErrRecordNotFound)

		got, err := svc.Summary(ctx, "u2", 5)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.Likes)
		assert.Empty(t, got.Mine)
	})

	t.Run("own reaction lookup fails", func(t *testing.T) {
		svc, reactions, _ := setupReactionService()
		reactions.On("Summary", ctx, int64(5)).Return(&repository.ReactionSummary{}, nil)
		reactions.On("GetByUserAndPost", ctx, "u2", int64(5)).Return(nil, errors.New("timeout"))

		_, err := svc.Summary(ctx, "u2", 5)
		assert.Error(t, err)
	})
}
