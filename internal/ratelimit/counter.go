package ratelimit

import (
	"context"
	"time"
)

// Counter is the storage the limiter needs: an atomic increment and a TTL.
type Counter interface {
	// Incr increments key by one and returns the new value. A missing key
	// starts at zero.
	Incr(ctx context.Context, key string) (int64, error)

	// Expire sets the time-to-live of key.
	Expire(ctx context.Context, key string, ttl time.Duration) error
}
