package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

// UserService serves the user search endpoint.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

// Search resolves a query against the user directory. An exact
// case-insensitive email match wins and returns that single user; otherwise
// the query is matched partially against email and name, excluding the
// caller from the results.
func (s *UserService) Search(ctx context.Context, actorID, query string, page int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}

	exact, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(query))
	if err == nil {
		return &ports.UserPage{Users: []*domain.User{exact}, Total: 1}, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("search users: %w", err)
	}

	users, total, err := s.users.Search(ctx, ports.SearchFilter{
		Query:     query,
		ExcludeID: actorID,
		Page:      page,
		Limit:     PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	return &ports.UserPage{Users: users, Total: total}, nil
}
