package domain

import "time"

// NotificationKind identifies what happened to trigger a notification.
type NotificationKind string

const (
	NotificationRequestReceived NotificationKind = "friend_request_received"
	NotificationRequestAccepted NotificationKind = "friend_request_accepted"
)

// Notification is a message delivered to a user after a friend-graph event.
// Rows are written asynchronously by the dispatcher.
type Notification struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	UserID    string           `json:"user_id" bson:"user_id"`
	ActorID   string           `json:"actor_id" bson:"actor_id"`
	Kind      NotificationKind `json:"kind" bson:"kind"`
	Message   string           `json:"message" bson:"message"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
}
