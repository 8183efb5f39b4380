package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Window is the length of one counting window.
const Window = time.Minute

// KeyPrefix starts every counter key.
const KeyPrefix = "rate_limit"

// Decision is the outcome of one admission check.
type Decision struct {
	Allowed bool
	// Limit is the configured requests per window.
	Limit int
	// Remaining is how many more requests fit in the window, never negative.
	Remaining int
	// Reset is when the current window ends.
	Reset time.Time
	// RetryAfter is the time left in the current window, 1s to 60s.
	RetryAfter time.Duration
}

// Limiter admits at most limit requests per identity per wall-clock minute.
type Limiter struct {
	counter Counter
	limit   int
	now     func() time.Time
}

// NewLimiter creates a limiter over counter.
func NewLimiter(counter Counter, limit int) *Limiter {
	return &Limiter{counter: counter, limit: limit, now: time.Now}
}

// Limit returns the configured requests per window.
func (l *Limiter) Limit() int {
	return l.limit
}

// Allow counts one request for identity. Any counter error is returned
// unchanged and the Decision must then be ignored.
func (l *Limiter) Allow(ctx context.Context, identity string) (Decision, error) {
	now := l.now()
	key := Key(identity, now)

	count, err := l.counter.Incr(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	if count == 1 {
		if err := l.counter.Expire(ctx, key, Window); err != nil {
			return Decision{}, err
		}
	}

	windowSeconds := int64(Window / time.Second)
	reset := time.Unix((now.Unix()/windowSeconds+1)*windowSeconds, 0)
	retryAfter := time.Duration(windowSeconds-now.Unix()%windowSeconds) * time.Second

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:    count <= int64(l.limit),
		Limit:      l.limit,
		Remaining:  remaining,
		Reset:      reset,
		RetryAfter: retryAfter,
	}, nil
}

// Key returns the counter key for identity in the window containing t.
func Key(identity string, t time.Time) string {
	return fmt.Sprintf("%s:%s:%d", KeyPrefix, identity, t.Unix()/int64(Window/time.Second))
}
