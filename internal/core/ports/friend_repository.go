package ports

import (
	"context"
	"time"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// FriendRepository owns the friend_requests and friends collections.
// No other component mutates either entity.
type FriendRepository interface {
	CreateRequest(ctx context.Context, req *domain.FriendRequest) (*domain.FriendRequest, error)
	// HasOpenRequest reports whether a non-rejected request exists between the
	// two users, in either direction.
	HasOpenRequest(ctx context.Context, userA, userB string) (bool, error)
	// AreFriends reports whether a friendship exists between the two users,
	// checking both directed orderings.
	AreFriends(ctx context.Context, userA, userB string) (bool, error)
	// AcceptRequest atomically marks a still-pending request as accepted.
	// The update matches only when recipientID is the request's to_user and
	// neither terminal flag is set; otherwise domain.ErrRequestNotFound.
	AcceptRequest(ctx context.Context, requestID, recipientID string, at time.Time) (*domain.FriendRequest, error)
	// RejectRequest is the rejected-terminal counterpart of AcceptRequest.
	RejectRequest(ctx context.Context, requestID, recipientID string, at time.Time) (*domain.FriendRequest, error)
	CreateFriendship(ctx context.Context, f *domain.Friendship) error
	// FriendIDs returns the deduplicated counterpart ids of every friendship
	// the user appears in, on either side.
	FriendIDs(ctx context.Context, userID string) ([]string, error)
	// ListPending returns a page of pending requests involving the user as
	// sender or recipient, newest first, plus the total pending count.
	ListPending(ctx context.Context, userID string, page, limit int) ([]*domain.FriendRequest, int64, error)
}
