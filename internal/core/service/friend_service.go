package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialnet/friends-api/internal/core/domain"
	"github.com/socialnet/friends-api/internal/core/ports"
)

// PageSize is the fixed page size for all list projections.
const PageSize = 10

type FriendService struct {
	friends       ports.FriendRepository
	users         ports.UserRepository
	limiter       ports.SendRateLimiter
	notifications ports.NotificationQueue
	logger        zerolog.Logger
}

func NewFriendService(
	friends ports.FriendRepository,
	users ports.UserRepository,
	limiter ports.SendRateLimiter,
	notifications ports.NotificationQueue,
	logger zerolog.Logger,
) *FriendService {
	return &FriendService{
		friends:       friends,
		users:         users,
		limiter:       limiter,
		notifications: notifications,
		logger:        logger,
	}
}

// Send creates a pending friend request from actor to target.
//
// The rate limiter runs before the duplicate and friendship checks and
// consumes budget even when those checks later fail the attempt.
func (s *FriendService) Send(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return domain.ErrSelfRequest
	}

	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	allowed, err := s.limiter.Allow(ctx, actorID)
	if err != nil {
		return fmt.Errorf("send request: rate check: %w", err)
	}
	if !allowed {
		s.logger.Info().Str("actor_id", actorID).Msg("friend request throttled")
		return domain.ErrRateLimited
	}

	open, err := s.friends.HasOpenRequest(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	if open {
		return domain.ErrDuplicateRequest
	}

	friends, err := s.friends.AreFriends(ctx, actorID, targetID)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	if friends {
		return domain.ErrAlreadyFriends
	}

	req := &domain.FriendRequest{
		FromUserID: actorID,
		ToUserID:   targetID,
		CreatedAt:  time.Now().UTC(),
	}
	created, err := s.friends.CreateRequest(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("actor_id", actorID).Str("target_id", targetID).Msg("failed to create friend request")
		return err
	}

	s.notifications.Enqueue(ports.NotificationInput{
		UserID:  target.ID,
		ActorID: actorID,
		Kind:    domain.NotificationRequestReceived,
		Message: "You have a new friend request.",
	})

	s.logger.Info().
		Str("request_id", created.ID).
		Str("from_user_id", actorID).
		Str("to_user_id", targetID).
		Msg("friend request sent")

	return nil
}

// Accept marks a pending request as accepted and records the friendship.
// The state change is an atomic conditional update in the repository, so a
// request that is absent, addressed to someone else, or already terminal all
// surface identically as ErrRequestNotFound.
func (s *FriendService) Accept(ctx context.Context, actorID, requestID string) error {
	now := time.Now().UTC()

	req, err := s.friends.AcceptRequest(ctx, requestID, actorID, now)
	if err != nil {
		return err
	}

	friendship := &domain.Friendship{
		Friend1ID: req.FromUserID,
		Friend2ID: req.ToUserID,
		CreatedAt: now,
	}
	if err := s.friends.CreateFriendship(ctx, friendship); err != nil {
		s.logger.Error().Err(err).Str("request_id", requestID).Msg("failed to record friendship")
		return fmt.Errorf("accept request: %w", err)
	}

	s.notifications.Enqueue(ports.NotificationInput{
		UserID:  req.FromUserID,
		ActorID: actorID,
		Kind:    domain.NotificationRequestAccepted,
		Message: "Your friend request was accepted.",
	})

	s.logger.Info().
		Str("request_id", requestID).
		Str("from_user_id", req.FromUserID).
		Str("to_user_id", req.ToUserID).
		Msg("friend request accepted")

	return nil
}

// Reject marks a pending request as rejected. No friendship side effect.
func (s *FriendService) Reject(ctx context.Context, actorID, requestID string) error {
	req, err := s.friends.RejectRequest(ctx, requestID, actorID, time.Now().UTC())
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("request_id", requestID).
		Str("from_user_id", req.FromUserID).
		Msg("friend request rejected")

	return nil
}

// Friends returns one page of the user's friends ordered by email ascending.
func (s *FriendService) Friends(ctx context.Context, userID string, page int) (*ports.UserPage, error) {
	if page < 1 {
		page = 1
	}

	ids, err := s.friends.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("friend list: %w", err)
	}

	users, total, err := s.users.ListByIDs(ctx, ids, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("friend list: %w", err)
	}

	return &ports.UserPage{Users: users, Total: total}, nil
}

// PendingRequests returns one page of unresolved requests involving the
// user, newest first, with both parties resolved to user records.
func (s *FriendService) PendingRequests(ctx context.Context, userID string, page int) (*ports.PendingRequestPage, error) {
	if page < 1 {
		page = 1
	}

	requests, total, err := s.friends.ListPending(ctx, userID, page, PageSize)
	if err != nil {
		return nil, fmt.Errorf("pending requests: %w", err)
	}

	// Resolve both parties of every request in a single lookup.
	idSet := make(map[string]struct{}, len(requests)*2)
	for _, r := range requests {
		idSet[r.FromUserID] = struct{}{}
		idSet[r.ToUserID] = struct{}{}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	usersByID := make(map[string]*domain.User, len(ids))
	if len(ids) > 0 {
		users, err := s.users.FindByIDs(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("pending requests: %w", err)
		}
		for _, u := range users {
			usersByID[u.ID] = u
		}
	}

	items := make([]ports.PendingRequestItem, 0, len(requests))
	for _, r := range requests {
		items = append(items, ports.PendingRequestItem{
			ID:       r.ID,
			FromUser: usersByID[r.FromUserID],
			ToUser:   usersByID[r.ToUserID],
		})
	}

	return &ports.PendingRequestPage{Items: items, Total: total}, nil
}
