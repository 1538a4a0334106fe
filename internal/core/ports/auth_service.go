package ports

import (
	"context"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// AuthService implements account registration and session establishment.
type AuthService interface {
	// Signup creates an account. The email is normalized to lowercase and
	// must not collide with an existing account (case-insensitive).
	Signup(ctx context.Context, name, email, password string) (*domain.User, error)
	// Login verifies credentials against the normalized email and returns a
	// signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// UserService exposes user directory reads.
type UserService interface {
	// Search looks for an exact case-insensitive email match first; when none
	// exists it falls back to a partial match on email or name, excluding the
	// caller.
	Search(ctx context.Context, actorID, query string, page int) (*UserPage, error)
}
