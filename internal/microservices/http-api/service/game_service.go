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

type GameService interface {
	Create(ctx context.Context, req dto.CreateGameDTO) (*dto.GameResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.GameResponse, error)
	List(ctx context.Context, query string, page, pageSize int) (*dto.Paginated[dto.GameResponse], error)
}

type gameService struct {
	gameRepo repository.GameRepository
}

func NewGameService(gameRepo repository.GameRepository) GameService {
	return &gameService{gameRepo: gameRepo}
}

func (s *gameService) Create(ctx context.Context, req dto.CreateGameDTO) (*dto.GameResponse, error) {
	game := &models.Game{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("game %q already exists: %w", game.Title, ErrConflict)
		}
		return nil, err
	}
	return dto.FromModelToGameResponse(game), nil
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*dto.GameResponse, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("game %d", id))
	}
	return dto.FromModelToGameResponse(game), nil
}

func (s *gameService) List(ctx context.Context, query string, page, pageSize int) (*dto.Paginated[dto.GameResponse], error) {
	games, total, err := s.gameRepo.List(ctx, strings.TrimSpace(query), page, pageSize)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		out = append(out, *dto.FromModelToGameResponse(&games[i]))
	}
	return dto.NewPaginated(out, int(total), page, pageSize), nil
}
