package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// ViewedOp names a viewed-state transition
type ViewedOp string

const (
	OpMarkViewed   ViewedOp = "viewed"
	OpUnmarkViewed ViewedOp = "unviewed"
	OpHide         ViewedOp = "hidden"
	OpUnhide       ViewedOp = "unhidden"
)

// ParseViewedOp maps a route segment to its operation
func ParseViewedOp(s string) (ViewedOp, bool) {
	switch op := ViewedOp(s); op {
	case OpMarkViewed, OpUnmarkViewed, OpHide, OpUnhide:
		return op, true
	}
	return "", false
}

const (
	reasonInvalidID = "invalid notification id"
	reasonNotFound  = "notification not found"
	reasonInternal  = "internal error"
)

// ViewedStateService maintains the per-user viewed/hidden overlay.
// Batch calls never fail as a whole because of a single id; only a
// mismatched actor rejects the call before anything is written.
type ViewedStateService interface {
	MarkViewed(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error)
	UnmarkViewed(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error)
	Hide(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error)
	Unhide(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error)
	Apply(ctx context.Context, op ViewedOp, actorID, userID string, ids []int64) (*dto.BatchResult, error)
	// ApplyOne runs a single transition and returns the per-item error directly
	ApplyOne(ctx context.Context, op ViewedOp, actorID, userID string, id int64) error
}

type viewedStateService struct {
	notificationRepo repository.NotificationRepository
	viewedRepo       repository.ViewedRepository
	logger           *slog.Logger
	now              func() time.Time
}

func NewViewedStateService(
	notificationRepo repository.NotificationRepository,
	viewedRepo repository.ViewedRepository,
	logger *slog.Logger,
) ViewedStateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &viewedStateService{
		notificationRepo: notificationRepo,
		viewedRepo:       viewedRepo,
		logger:           logger,
		now:              time.Now,
	}
}

func (s *viewedStateService) MarkViewed(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error) {
	return s.Apply(ctx, OpMarkViewed, actorID, userID, ids)
}

func (s *viewedStateService) UnmarkViewed(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error) {
	return s.Apply(ctx, OpUnmarkViewed, actorID, userID, ids)
}

func (s *viewedStateService) Hide(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error) {
	return s.Apply(ctx, OpHide, actorID, userID, ids)
}

func (s *viewedStateService) Unhide(ctx context.Context, actorID, userID string, ids []int64) (*dto.BatchResult, error) {
	return s.Apply(ctx, OpUnhide, actorID, userID, ids)
}

func (s *viewedStateService) Apply(ctx context.Context, op ViewedOp, actorID, userID string, ids []int64) (*dto.BatchResult, error) {
	if err := checkActor(actorID, userID); err != nil {
		return nil, err
	}
	if _, ok := ParseViewedOp(string(op)); !ok {
		return nil, fmt.Errorf("unknown operation %q: %w", op, ErrValidation)
	}

	result := &dto.BatchResult{
		Succeeded: make([]int64, 0, len(ids)),
		Failed:    make([]dto.BatchFailure, 0),
	}

	for _, id := range dedupeIDs(ids) {
		if err := s.applyOne(ctx, op, userID, id); err != nil {
			result.Failed = append(result.Failed, dto.BatchFailure{ID: id, Reason: s.reasonFor(op, id, err)})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}

	return result, nil
}

func (s *viewedStateService) ApplyOne(ctx context.Context, op ViewedOp, actorID, userID string, id int64) error {
	if err := checkActor(actorID, userID); err != nil {
		return err
	}
	if _, ok := ParseViewedOp(string(op)); !ok {
		return fmt.Errorf("unknown operation %q: %w", op, ErrValidation)
	}
	return s.applyOne(ctx, op, userID, id)
}

func (s *viewedStateService) applyOne(ctx context.Context, op ViewedOp, userID string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("notification id %d: %w", id, ErrValidation)
	}

	if _, err := s.notificationRepo.GetVisibleByID(ctx, userID, id); err != nil {
		return notFoundOr(err, fmt.Sprintf("notification %d", id))
	}

	now := s.now().UTC()
	switch op {
	case OpMarkViewed:
		return s.viewedRepo.InsertIfAbsent(ctx, id, userID, now)
	case OpUnmarkViewed:
		return s.viewedRepo.DeleteIfNotHidden(ctx, id, userID)
	case OpHide:
		return s.viewedRepo.UpsertHidden(ctx, id, userID, true, now)
	case OpUnhide:
		return s.viewedRepo.UpsertHidden(ctx, id, userID, false, now)
	}
	return fmt.Errorf("unknown operation %q: %w", op, ErrValidation)
}

func (s *viewedStateService) reasonFor(op ViewedOp, id int64, err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return reasonInvalidID
	case errors.Is(err, ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		return reasonNotFound
	}
	s.logger.Error("viewed_state_update_failed",
		"op", string(op),
		"notification_id", id,
		"error", err)
	return reasonInternal
}

func checkActor(actorID, userID string) error {
	if actorID == "" || actorID != userID {
		return fmt.Errorf("cannot change another user's notifications: %w", ErrForbidden)
	}
	return nil
}

// dedupeIDs keeps the first occurrence of every id, preserving order
func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
