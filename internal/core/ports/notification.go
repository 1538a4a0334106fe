package ports

import (
	"context"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// NotificationInput is a notification event awaiting persistence.
type NotificationInput struct {
	UserID  string
	ActorID string
	Kind    domain.NotificationKind
	Message string
}

// NotificationQueue accepts notification events for asynchronous delivery.
// Implemented by the queue dispatcher; Enqueue never blocks the caller
// beyond the worker channel buffer.
type NotificationQueue interface {
	Enqueue(input NotificationInput)
}

// NotificationService processes queued events and serves reads.
type NotificationService interface {
	Process(ctx context.Context, input NotificationInput) error
	List(ctx context.Context, userID string, page int) (*NotificationPage, error)
}

// NotificationPage is one page of a user's notifications plus the total count.
type NotificationPage struct {
	Items []*domain.Notification
	Total int64
}

// NotificationRepository owns the notifications collection.
type NotificationRepository interface {
	Insert(ctx context.Context, n *domain.Notification) error
	// ListByUser returns a page of the user's notifications, newest first.
	ListByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Notification, int64, error)
}
