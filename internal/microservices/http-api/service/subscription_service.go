package service

import (
	"context"
	"fmt"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/repository"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, userID string, fandomID int64) error
	Unsubscribe(ctx context.Context, userID string, fandomID int64) error
	Members(ctx context.Context, fandomID int64) (*dto.MembersResponse, error)
	ListMine(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	fandomRepo       repository.FandomRepository
}

func NewSubscriptionService(
	subscriptionRepo repository.SubscriptionRepository,
	fandomRepo repository.FandomRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		fandomRepo:       fandomRepo,
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, userID string, fandomID int64) error {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}
	return s.subscriptionRepo.Subscribe(ctx, userID, fandomID)
}

// Unsubscribe ends membership; the user's notifications for the fandom stop being visible
func (s *subscriptionService) Unsubscribe(ctx context.Context, userID string, fandomID int64) error {
	if err := s.subscriptionRepo.Unsubscribe(ctx, userID, fandomID); err != nil {
		return notFoundOr(err, fmt.Sprintf("subscription to fandom %d", fandomID))
	}
	return nil
}

func (s *subscriptionService) Members(ctx context.Context, fandomID int64) (*dto.MembersResponse, error) {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}

	userIDs, err := s.subscriptionRepo.GetUserIDsByFandomID(ctx, fandomID)
	if err != nil {
		return nil, err
	}
	if userIDs == nil {
		userIDs = []string{}
	}

	return &dto.MembersResponse{
		FandomID: fandomID,
		UserIDs:  userIDs,
		Count:    len(userIDs),
	}, nil
}

func (s *subscriptionService) ListMine(ctx context.Context, userID string) ([]dto.SubscriptionResponse, error) {
	subs, err := s.subscriptionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.SubscriptionResponse, 0, len(subs))
	for i := range subs {
		out = append(out, *dto.FromModelToSubscriptionResponse(&subs[i]))
	}
	return out, nil
}
