package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

// CreateCommentDTO for creating a comment
type CreateCommentDTO struct {
	Content string `json:"content" binding:"required,notblank,max=5000"`
}

// UpdateCommentDTO for updating a comment
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,notblank,max=5000"`
}

type CommentResponse struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	Content   string     `json:"content"`
	Edited    bool       `json:"edited"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Username:  comment.User.Username,
		Content:   comment.Content,
		Edited:    comment.EditedAt != nil,
		EditedAt:  comment.EditedAt,
		CreatedAt: comment.CreatedAt,
	}
}
