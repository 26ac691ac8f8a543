package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

type CreatePostDTO struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank,max=20000"`
}

type PostResponse struct {
	ID        int64     `json:"id"`
	FandomID  int64     `json:"fandom_id"`
	AuthorID  string    `json:"author_id"`
	Author    string    `json:"author,omitempty"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModelToPostResponse(post *models.Post) *PostResponse {
	return &PostResponse{
		ID:        post.ID,
		FandomID:  post.FandomID,
		AuthorID:  post.AuthorID,
		Author:    post.Author.Username,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}
