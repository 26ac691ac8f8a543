package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

type CreateGameDTO struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Description string `json:"description" binding:"max=5000"`
}

type GameResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToGameResponse(game *models.Game) *GameResponse {
	return &GameResponse{
		ID:          game.ID,
		Title:       game.Title,
		Description: game.Description,
		CreatedAt:   game.CreatedAt,
	}
}
