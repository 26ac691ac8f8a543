package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"
)

type EventService interface {
	Create(ctx context.Context, creatorID string, fandomID int64, req dto.CreateEventDTO) (*dto.EventResponse, error)
	ListByFandom(ctx context.Context, fandomID int64) ([]dto.EventResponse, error)
}

type eventService struct {
	eventRepo  repository.EventRepository
	fandomRepo repository.FandomRepository
	notifier   Notifier
	logger     *slog.Logger
}

func NewEventService(
	eventRepo repository.EventRepository,
	fandomRepo repository.FandomRepository,
	notifier Notifier,
	logger *slog.Logger,
) EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		eventRepo:  eventRepo,
		fandomRepo: fandomRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Create schedules an event and emits a NewEvent notification to the fandom
func (s *eventService) Create(ctx context.Context, creatorID string, fandomID int64, req dto.CreateEventDTO) (*dto.EventResponse, error) {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}
	if req.StartsAt.IsZero() {
		return nil, fmt.Errorf("starts_at is required: %w", ErrValidation)
	}

	event := &models.Event{
		FandomID:    fandomID,
		CreatorID:   creatorID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartsAt:    req.StartsAt.UTC(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}

	if _, err := s.notifier.Notify(ctx, fandomID, creatorID, models.NotificationNewEvent); err != nil {
		s.logger.Error("event_notification_failed",
			"event_id", event.ID,
			"fandom_id", fandomID,
			"error", err)
	}

	return dto.FromModelToEventResponse(event), nil
}

func (s *eventService) ListByFandom(ctx context.Context, fandomID int64) ([]dto.EventResponse, error) {
	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}

	events, err := s.eventRepo.ListByFandom(ctx, fandomID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *dto.FromModelToEventResponse(&events[i]))
	}
	return out, nil
}
