package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"fandomhub/internal/microservices/http-api/dto"
	"fandomhub/internal/microservices/http-api/models"
	"fandomhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// Notifier creates a notification for a fandom and pushes it to the members
type Notifier interface {
	Notify(ctx context.Context, fandomID int64, notifierID, notificationType string) (*dto.NotificationDto, error)
}

// NotificationService produces notifications and composes each user's read model
type NotificationService interface {
	Notifier
	GetNotificationsWithViewed(ctx context.Context, userID string, isHidden *bool) ([]dto.NotificationWithViewedDto, error)
	GetNotificationWithViewed(ctx context.Context, userID string, notificationID int64) (*dto.NotificationWithViewedDto, bool, error)
	CountUnviewed(ctx context.Context, userID string) (int64, error)
}

type notificationService struct {
	notificationRepo repository.NotificationRepository
	viewedRepo       repository.ViewedRepository
	fandomRepo       repository.FandomRepository
	subscriptionRepo repository.SubscriptionRepository
	pusher           Pusher
	logger           *slog.Logger
	now              func() time.Time
}

func NewNotificationService(
	notificationRepo repository.NotificationRepository,
	viewedRepo repository.ViewedRepository,
	fandomRepo repository.FandomRepository,
	subscriptionRepo repository.SubscriptionRepository,
	pusher Pusher,
	logger *slog.Logger,
) NotificationService {
	if pusher == nil {
		pusher = NopPusher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		notificationRepo: notificationRepo,
		viewedRepo:       viewedRepo,
		fandomRepo:       fandomRepo,
		subscriptionRepo: subscriptionRepo,
		pusher:           pusher,
		logger:           logger,
		now:              time.Now,
	}
}

// Notify persists a notification and pushes it to every member of the fandom.
// Nothing is pushed unless the insert succeeds. Failures after the insert are
// logged only, since the stored row is what the read model serves.
func (s *notificationService) Notify(ctx context.Context, fandomID int64, notifierID, notificationType string) (*dto.NotificationDto, error) {
	if !models.IsValidNotificationType(notificationType) {
		return nil, fmt.Errorf("unknown notification type %q: %w", notificationType, ErrValidation)
	}
	if notifierID == "" {
		return nil, fmt.Errorf("notifier is required: %w", ErrValidation)
	}

	if _, err := s.fandomRepo.GetByID(ctx, fandomID); err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("fandom %d", fandomID))
	}

	notification := &models.Notification{
		FandomID:   fandomID,
		NotifierID: notifierID,
		Type:       notificationType,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	out := dto.FromModelToNotificationDto(notification)

	memberIDs, err := s.subscriptionRepo.GetUserIDsByFandomID(ctx, fandomID)
	if err != nil {
		s.logger.Error("notification_members_lookup_failed",
			"notification_id", notification.ID,
			"fandom_id", fandomID,
			"error", err)
		return out, nil
	}

	if err := s.pusher.PushMany(ctx, memberIDs, EventReceiveNotification, out); err != nil {
		s.logger.Warn("notification_push_failed",
			"notification_id", notification.ID,
			"fandom_id", fandomID,
			"error", err)
		return out, nil
	}

	s.logger.Debug("notification_sent",
		"notification_id", notification.ID,
		"fandom_id", fandomID,
		"type", notificationType,
		"recipients", len(memberIDs))

	return out, nil
}

// GetNotificationsWithViewed returns the user's visible notifications merged with
// their overlay rows, newest first. isHidden nil means no filter.
func (s *notificationService) GetNotificationsWithViewed(ctx context.Context, userID string, isHidden *bool) ([]dto.NotificationWithViewedDto, error) {
	composed, err := s.compose(ctx, userID)
	if err != nil {
		return nil, err
	}

	if isHidden == nil {
		return composed, nil
	}

	filtered := make([]dto.NotificationWithViewedDto, 0, len(composed))
	for _, n := range composed {
		if n.IsHidden == *isHidden {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// GetNotificationWithViewed reports found=false when the notification is
// missing or belongs to a fandom the user is not a member of.
func (s *notificationService) GetNotificationWithViewed(ctx context.Context, userID string, notificationID int64) (*dto.NotificationWithViewedDto, bool, error) {
	if notificationID <= 0 {
		return nil, false, nil
	}

	notification, err := s.notificationRepo.GetVisibleByID(ctx, userID, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	viewed, err := s.viewedRepo.Get(ctx, notificationID, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		viewed = nil
	}

	out := dto.NewNotificationWithViewed(notification, viewed)
	return &out, true, nil
}

// CountUnviewed counts visible notifications the user has no overlay row for
func (s *notificationService) CountUnviewed(ctx context.Context, userID string) (int64, error) {
	composed, err := s.compose(ctx, userID)
	if err != nil {
		return 0, err
	}

	var count int64
	for _, n := range composed {
		if !n.IsViewed {
			count++
		}
	}
	return count, nil
}

func (s *notificationService) compose(ctx context.Context, userID string) ([]dto.NotificationWithViewedDto, error) {
	notifications, err := s.notificationRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.viewedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	byNotification := make(map[int64]*models.NotificationViewed, len(rows))
	for i := range rows {
		byNotification[rows[i].NotificationID] = &rows[i]
	}

	out := make([]dto.NotificationWithViewedDto, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		out = append(out, dto.NewNotificationWithViewed(n, byNotification[n.ID]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}
