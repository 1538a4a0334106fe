package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SendLimiter throttles friend-request sends per actor using a pair of
// expiring keys:
//
//	request_count:<user_id>  attempts in the current window
//	timestamp:<user_id>      unix seconds of the last permitted attempt
//
// The window's reference timestamp is refreshed on every permitted call, not
// recomputed from a fixed origin, so the limit behaves as a rolling "max N
// per window since the last allowed send". Both keys carry the window as
// their TTL, which is also the only recovery mechanism after a block.
type SendLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
	now    func() time.Time // injectable for tests
}

// NewSendLimiter creates a SendLimiter wrapping the given Redis client.
func NewSendLimiter(client *redis.Client, max int, window time.Duration) *SendLimiter {
	if max <= 0 {
		max = 3
	}
	if window <= 0 {
		window = time.Minute
	}
	return &SendLimiter{client: client, max: max, window: window, now: time.Now}
}

// Allow reports whether the actor may send. A permitted call increments the
// counter and refreshes the window timestamp; a blocked call has no side
// effect and recovers only through key expiry.
func (l *SendLimiter) Allow(ctx context.Context, actorID string) (bool, error) {
	now := l.now().UTC()

	vals, err := l.client.MGet(ctx, l.countKey(actorID), l.timestampKey(actorID)).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit read: %w", err)
	}

	count := parseInt(vals[0])
	last, hasLast := parseUnix(vals[1])

	if exceeded(count, last, hasLast, now, l.max, l.window) {
		return false, nil
	}

	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, l.countKey(actorID))
	pipe.Expire(ctx, l.countKey(actorID), l.window)
	pipe.Set(ctx, l.timestampKey(actorID), now.Unix(), l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit update: %w", err)
	}

	return true, nil
}

// exceeded is the window decision rule, kept pure so it can be exercised
// with a controlled clock.
func exceeded(count int, last time.Time, hasLast bool, now time.Time, max int, window time.Duration) bool {
	if !hasLast {
		return false
	}
	if now.Sub(last) >= window {
		return false
	}
	return count >= max
}

func (l *SendLimiter) countKey(actorID string) string {
	return "request_count:" + actorID
}

func (l *SendLimiter) timestampKey(actorID string) string {
	return "timestamp:" + actorID
}

func parseInt(v any) int {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func parseUnix(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0).UTC(), true
}
