package handler

import "github.com/socialnet/friends-api/internal/core/domain"

// --- Request types ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Email string `json:"email"`
	// Username is a legacy alias for email kept for older clients.
	Username string `json:"username"`
	Password string `json:"password"`
}

type friendActionRequest struct {
	Action          string `json:"action"`
	FriendID        string `json:"friend_id"`
	FriendRequestID string `json:"friend_request_id"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func toUserResponse(u *domain.User) userResponse {
	if u == nil {
		return userResponse{}
	}
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name}
}

func toUserResponses(users []*domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return out
}

type pendingRequestResponse struct {
	ID       string       `json:"id"`
	FromUser userResponse `json:"from_user"`
	ToUser   userResponse `json:"to_user"`
}

type notificationResponse struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	ActorID   string `json:"actor_id"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
