package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

type notificationService struct {
	repo   ports.NotificationRepository
	logger zerolog.Logger
}

// NewNotificationService returns a NotificationService implementation.
func NewNotificationService(repo ports.NotificationRepository, logger zerolog.Logger) ports.NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// Process persists a single queued notification event.
func (s *notificationService) Process(ctx context.Context, input ports.NotificationInput) error {
	n := &domain.Notification{
		UserID:    input.UserID,
		ActorID:   input.ActorID,
		Kind:      input.Kind,
		Message:   input.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, n); err != nil {
		return fmt.Errorf("process notification: %w", err)
	}

	s.logger.Debug().
		Str("user_id", input.UserID).
		Str("kind", string(input.Kind)).
		Msg("notification stored")

	return nil
}

// List returns one page of the user's notifications, newest first.
func (s *notificationService) List(ctx context.Context, userID string, page int) (*ports.NotificationPage, error) {
	if page < 1 {
		page = 1
	}

	items, total, err := s.repo.ListByUser(ctx, userID, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return &ports.NotificationPage{Items: items, Total: total}, nil
}
