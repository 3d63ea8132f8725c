package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client. addr may be empty; all operations on a
// client without a backing connection behave as no-ops.
func New(addr, password string, db int) *Client {
	if addr == "" {
		return &Client{}
	}
	opts := &redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	}
	return &Client{client: redis.NewClient(opts)}
}

// Available reports whether a Redis connection is configured.
func (c *Client) Available() bool {
	return c != nil && c.client != nil
}

// Incr increments key and sets ttl on the first increment, returning the new
// count. On any redis failure it returns 0 so callers can fail open.
func (c *Client) Incr(ctx context.Context, key string, ttl time.Duration) int64 {
	if !c.Available() {
		return 0
	}
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		// fail safe: behave as if redis were absent
		return 0
	}
	if count == 1 {
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0
		}
		return count
	}
	// Heal a window whose initial Expire was lost to a transient failure;
	// without this the counter would never reset for that key.
	if d, err := c.client.TTL(ctx, key).Result(); err == nil && d < 0 {
		if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0
		}
	}
	return count
}
