package dto

import (
	"time"

	"fandomhub/internal/microservices/http-api/models"
)

type CreateFandomDTO struct {
	GameID      int64  `json:"game_id" binding:"required,gt=0"`
	Name        string `json:"name" binding:"required,notblank,max=100"`
	Description string `json:"description" binding:"max=5000"`
}

type FandomResponse struct {
	ID          int64     `json:"id"`
	GameID      int64     `json:"game_id"`
	GameTitle   string    `json:"game_title,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromModelToFandomResponse(fandom *models.Fandom) *FandomResponse {
	resp := &FandomResponse{
		ID:          fandom.ID,
		GameID:      fandom.GameID,
		Name:        fandom.Name,
		Description: fandom.Description,
		CreatorID:   fandom.CreatorID,
		CreatedAt:   fandom.CreatedAt,
	}
	if fandom.Game != nil {
		resp.GameTitle = fandom.Game.Title
	}
	return resp
}

// SubscriptionResponse is one entry of the caller's membership list
type SubscriptionResponse struct {
	FandomID     int64     `json:"fandom_id"`
	FandomName   string    `json:"fandom_name,omitempty"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func FromModelToSubscriptionResponse(sub *models.FandomSubscription) *SubscriptionResponse {
	resp := &SubscriptionResponse{
		FandomID:     sub.FandomID,
		SubscribedAt: sub.SubscribedAt,
	}
	if sub.Fandom != nil {
		resp.FandomName = sub.Fandom.Name
	}
	return resp
}

type MembersResponse struct {
	FandomID int64    `json:"fandom_id"`
	UserIDs  []string `json:"user_ids"`
	Count    int      `json:"count"`
}
