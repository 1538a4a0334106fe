package ports

import (
	"context"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// UserPage is one page of users plus the total match count.
type UserPage struct {
	Users []*domain.User
	Total int64
}

// PendingRequestItem is a pending friend request with both parties resolved.
type PendingRequestItem struct {
	ID       string
	FromUser *domain.User
	ToUser   *domain.User
}

// PendingRequestPage is one page of pending requests plus the total count.
type PendingRequestPage struct {
	Items []PendingRequestItem
	Total int64
}

// FriendService is the request workflow engine plus the read-side
// projections over the friendship ledger.
type FriendService interface {
	// Send creates a pending friend request from actor to target. It enforces
	// the per-actor rate limit, the self-request guard, and the
	// duplicate-request and already-friends checks, in that order.
	Send(ctx context.Context, actorID, targetID string) error
	// Accept marks a pending request as accepted and records the friendship.
	// Only the recipient may accept; anyone else sees ErrRequestNotFound.
	Accept(ctx context.Context, actorID, requestID string) error
	// Reject marks a pending request as rejected. Same visibility rule as Accept.
	Reject(ctx context.Context, actorID, requestID string) error
	// Friends returns a page of the user's friends ordered by email.
	Friends(ctx context.Context, userID string, page int) (*UserPage, error)
	// PendingRequests returns a page of unresolved requests involving the
	// user, newest first.
	PendingRequests(ctx context.Context, userID string, page int) (*PendingRequestPage, error)
}
