package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a friend request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Accepted and rejected are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusAccepted, StatusRejected},
}

var ErrRequestNotFound = errors.New("friend request not found")
var ErrDuplicateRequest = errors.New("friend request already sent")
var ErrAlreadyFriends = errors.New("friend request already accepted")
var ErrSelfRequest = errors.New("cannot send friend request to self")
var ErrRateLimited = errors.New("too many friend requests")

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FriendRequest is a directed request from one user to another. At most one
// non-rejected request may exist between a pair of users, in either direction.
type FriendRequest struct {
	ID         string     `json:"id" bson:"_id,omitempty"`
	FromUserID string     `json:"from_user_id" bson:"from_user_id"`
	ToUserID   string     `json:"to_user_id" bson:"to_user_id"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
	Accepted   bool       `json:"accepted" bson:"accepted"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty" bson:"accepted_at,omitempty"`
	Rejected   bool       `json:"rejected" bson:"rejected"`
	RejectedAt *time.Time `json:"rejected_at,omitempty" bson:"rejected_at,omitempty"`
}

// Status derives the lifecycle state from the two terminal flags.
func (r *FriendRequest) Status() RequestStatus {
	switch {
	case r.Accepted:
		return StatusAccepted
	case r.Rejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// Friendship records a confirmed relation. Friend1 is always the original
// sender and Friend2 the recipient, but reads treat the pair as unordered.
type Friendship struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Friend1ID string    `json:"friend1_id" bson:"friend1_id"`
	Friend2ID string    `json:"friend2_id" bson:"friend2_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CounterpartID returns the other member of the pair, or "" when userID is
// not part of the friendship.
func (f *Friendship) CounterpartID(userID string) string {
	switch userID {
	case f.Friend1ID:
		return f.Friend2ID
	case f.Friend2ID:
		return f.Friend1ID
	default:
		return ""
	}
}
