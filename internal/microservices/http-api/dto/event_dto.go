package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

type CreateEventDTO struct {
	Title       string    `json:"title" binding:"required,notblank,max=200"`
	Description string    `json:"description" binding:"max=5000"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
}

type EventResponse struct {
	ID          int64     `json:"id"`
	FandomID    int64     `json:"fandom_id"`
	CreatorID   string    `json:"creator_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartsAt    time.Time `json:"starts_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToEventResponse(event *models.Event) *EventResponse {
	return &EventResponse{
		ID:          event.ID,
		FandomID:    event.FandomID,
		CreatorID:   event.CreatorID,
		Title:       event.Title,
		Description: event.Description,
		StartsAt:    event.StartsAt,
		CreatedAt:   event.CreatedAt,
	}
}
