package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter implements Counter on Redis INCR and EXPIRE.
type RedisCounter struct {
	client  redis.UniversalClient
	timeout time.Duration
}

// Ensure RedisCounter implements Counter interface
var _ Counter = (*RedisCounter)(nil)

// NewRedisCounter wraps client. A positive timeout bounds every call.
func NewRedisCounter(client redis.UniversalClient, timeout time.Duration) *RedisCounter {
	return &RedisCounter{client: client, timeout: timeout}
}

// NewRedisClient parses a redis:// URL into a client. No connection is
// made until the first command.
func NewRedisClient(url string, timeout time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if timeout > 0 {
		opts.DialTimeout = timeout
		opts.ReadTimeout = timeout
		opts.WriteTimeout = timeout
	}
	// The limiter fails open, so a retry would only add latency.
	opts.MaxRetries = -1
	return redis.NewClient(opts), nil
}

// Incr implements Counter.Incr.
func (c *RedisCounter) Incr(ctx context.Context, key string) (int64, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	n, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr %q: %w", key, err)
	}
	return n, nil
}

// Expire implements Counter.Expire.
func (c *RedisCounter) Expire(ctx context.Context, key string, ttl time.Duration) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("redis expire %q: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (c *RedisCounter) Ping(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func (c *RedisCounter) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}
