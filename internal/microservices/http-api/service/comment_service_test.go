package service

import (
	"context"
	"errors"
	"testing"

	"fandomhub/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil {
		comment.ID = 5
	}
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64, userID string) error {
	return m.Called(ctx, commentID, userID).Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByPost(ctx context.Context, postID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, postID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func TestCommentCreate(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	posts.On("GetByID", mock.Anything, int64(3)).Return(&models.Post{ID: 3}, nil)
	comments.On("Create", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)
	comments.On("GetByID", mock.Anything, int64(5)).Return(&models.Comment{
		ID: 5, PostID: 3, UserID: "u1", Content: "nice", User: models.User{Username: "alice"},
	}, nil)

	resp, err := svc.CreateComment(ctx, "u1", 3, "nice")
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.False(t, resp.Edited)
}

func TestCommentCreate_UnknownPost(t *testing.T) {
	comments := new(MockCommentRepository)
	posts := new(MockPostRepository)
	svc := NewCommentService(comments, posts)

	posts.On("GetByID", mock.Anything, int64(9)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateComment(context.Background(), "u1", 9, "hi")
	assert.True(t, errors.Is(err, ErrNotFound))
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentUpdate_StampsEdit(t *testing.T) {
	comments := new(MockCommentRepository)
	svc := NewCommentService(comments, new(MockPostRepository))

	comments.On("GetByID", mock.Anything, int64(5)).Return(&models.Comment{ID: 5, UserID: "u1", Content: "old"}, nil)
	comments.On("Update", mock.Anything, mock.AnythingOfType("*models.Comment")).Return(nil)

	resp, err := svc.UpdateComment(context.Background(), 5, "u1", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", resp.Content)
	assert.True(t, resp.Edited)
	require.NotNil(t, resp.EditedAt)
}

func TestCommentUpdateDelete_OtherUserForbidden(t *testing.T) {
	comments := new(MockCommentRepository)
	svc := NewCommentService(comments, new(MockPostRepository))
	ctx := context.Background()

	comments.On("GetByID", mock.Anything, int64(5)).Return(&models.Comment{ID: 5, UserID: "u1"}, nil)

	_, err := svc.UpdateComment(ctx, 5, "u2", "mine now")
	assert.True(t, errors.Is(err, ErrForbidden))

	err = svc.DeleteComment(ctx, 5, "u2")
	assert.True(t, errors.Is(err, ErrForbidden))
	comments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	comments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
}
