package ratelimit

import (
	"context"
	"sync"
	"time"

	"aivault/internal/cache"
)

// Limiter answers whether a caller identified by key may proceed. Counting is
// per key over a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// RedisLimiter counts requests in Redis so the limit holds across replicas.
// If Redis is unreachable it fails open.
type RedisLimiter struct {
	cache  *cache.Client
	limit  int64
	window time.Duration
}

// NewRedisLimiter creates a Redis-backed fixed-window limiter.
func NewRedisLimiter(c *cache.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{cache: c, limit: int64(limit), window: window}
}

// Allow increments the window counter for key and checks it against the limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string) bool {
	count := l.cache.Incr(ctx, "ratelimit:"+key, l.window)
	if count == 0 {
		// redis unavailable
		return true
	}
	return count <= l.limit
}

type window struct {
	count int
	reset time.Time
}

// MemoryLimiter is an in-process fixed-window limiter used when no Redis is
// configured.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	now     func() time.Time
}

// NewMemoryLimiter creates an in-memory fixed-window limiter.
func NewMemoryLimiter(limit int, period time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		now:     time.Now,
	}
}

// Allow increments the counter for key, opening a fresh window when the
// previous one has elapsed.
func (l *MemoryLimiter) Allow(_ context.Context, key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.windows[key]
	if !ok || now.After(w.reset) {
		l.evictExpired(now)
		l.windows[key] = &window{count: 1, reset: now.Add(l.period)}
		return true
	}
	w.count++
	return w.count <= l.limit
}

// evictExpired drops windows that have already elapsed so the map does not
// grow without bound across distinct keys. Called with the lock held.
func (l *MemoryLimiter) evictExpired(now time.Time) {
	for key, w := range l.windows {
		if now.After(w.reset) {
			delete(l.windows, key)
		}
	}
}
