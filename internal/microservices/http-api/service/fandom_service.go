package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type FandomService interface {
	Create(ctx context.Context, creatorID string, req dto.CreateFandomDTO) (*dto.FandomResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.FandomResponse, error)
	ListByGame(ctx context.Context, gameID int64) ([]dto.FandomResponse, error)
	Delete(ctx context.Context, id int64, userID, role string) error
}

type fandomService struct {
	fandomRepo       repository.FandomRepository
	gameRepo         repository.GameRepository
	subscriptionRepo repository.SubscriptionRepository
}

func NewFandomService(
	fandomRepo repository.FandomRepository,
	gameRepo repository.GameRepository,
	subscriptionRepo repository.SubscriptionRepository,
) FandomService {
	return &fandomService{
		fandomRepo:       fandomRepo,
		gameRepo:         gameRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Create registers a fandom under a game; the creator becomes its first member
func (s *fandomService) Create(ctx context.Context, creatorID string, req dto.CreateFandomDTO) (*dto.FandomResponse, error) {
	game, err := s.gameRepo.GetByID(ctx, req.GameID)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("game %d", req.GameID))
	}

	fandom := &models.Fandom{
		GameID:      game.ID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   creatorID,
	}
	if err := s.fandomRepo.Create(ctx, fandom); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("fandom %q already exists: %w", fandom.Name, ErrConflict)
		}
		return nil, err
	}
	fandom.Game = game

	if err := s.subscriptionRepo.Subscribe(ctx, creatorID, fandom.ID); err != nil {
		return nil, err
	}

	return dto.FromModelToFandomResponse(fandom), nil
}

func (s *fandomService) GetByID(ctx context.Context, id int64) (*dto.FandomResponse, error) {
	fandom, err := s.fandomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", id))
	}
	return dto.FromModelToFandomResponse(fandom), nil
}

func (s *fandomService) ListByGame(ctx context.Context, gameID int64) ([]dto.FandomResponse, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("game %d", gameID))
	}

	fandoms, err := s.fandomRepo.ListByGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.FandomResponse, 0, len(fandoms))
	for i := range fandoms {
		out = append(out, *dto.FromModelToFandomResponse(&fandoms[i]))
	}
	return out, nil
}

// Delete removes a fandom and, through the cascade, its notifications and overlay rows
func (s *fandomService) Delete(ctx context.Context, id int64, userID, role string) error {
	fandom, err := s.fandomRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundOr(err, fmt.Sprintf("fandom %d", id))
	}

	if fandom.CreatorID != userID && role != models.RoleAdmin {
		return fmt.Errorf("only the creator can delete fandom %d: %w", id, ErrForbidden)
	}

	if err := s.fandomRepo.Delete(ctx, id); err != nil {
		return notFoundOr(err, fmt.Sprintf("fandom %d", id))
	}
	return nil
}
