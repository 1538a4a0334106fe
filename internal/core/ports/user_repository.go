package ports

import (
	"context"

	"github.com/socialnet/friends-api/internal/core/domain"
)

// SearchFilter carries the parameters for a partial-match user search.
// The query is matched case-insensitively against email and name.
type SearchFilter struct {
	Query     string
	ExcludeID string // caller's id, excluded from partial matches
	Page      int    // 1-based
	Limit     int
}

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail looks up a user by normalized (lowercase) email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	// ListByIDs returns a page of the given users ordered by email ascending,
	// plus the total number of ids that resolve to users.
	ListByIDs(ctx context.Context, ids []string, page, limit int) ([]*domain.User, int64, error)
	// Search returns a page of partial matches and the total match count.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.User, int64, error)
}
