package ports

import "context"

// SendRateLimiter gates the send action per actor.
//
// Allow reports whether the actor may proceed. A permitted call consumes
// budget: the implementation increments the actor's counter and refreshes
// the window's reference timestamp, so attempts that later fail the
// duplicate or friendship checks still count toward the limit.
type SendRateLimiter interface {
	Allow(ctx context.Context, actorID string) (bool, error)
}
