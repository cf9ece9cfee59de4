package matrix

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedProvider memoizes an underlying Provider. With a Redis client
// it shares the cache across processes; without one it falls back to
// an in-process map. Grounded on the ancestor's RedisBroker
// (internal/api/broker_redis.go), which was the only place in the
// ancestor that talked to Redis — reused here for a second, distinct
// concern (memoization instead of pub/sub) rather than dropping the
// dependency.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration

	mu    sync.RWMutex
	local map[[2]int]int64
}

// NewCachedProvider wraps inner. If rdb is nil, caching is local-only.
func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl, local: make(map[[2]int]int64)}
}

func (c *CachedProvider) Cost(from, to int) int64 {
	key := [2]int{from, to}
	c.mu.RLock()
	if v, ok := c.local[key]; ok {
		c.mu.RUnlock()
		return v
	}
	c.mu.RUnlock()

	if c.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		if s, err := c.rdb.Get(ctx, c.redisKey(from, to)).Result(); err == nil {
			if v, perr := strconv.ParseInt(s, 10, 64); perr == nil {
				c.store(key, v)
				return v
			}
		}
	}

	v := c.inner.Cost(from, to)
	c.store(key, v)
	if c.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		_ = c.rdb.Set(ctx, c.redisKey(from, to), v, c.ttl).Err()
	}
	return v
}

func (c *CachedProvider) store(key [2]int, v int64) {
	c.mu.Lock()
	c.local[key] = v
	c.mu.Unlock()
}

func (c *CachedProvider) redisKey(from, to int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "vrpls:matrix:%d:%d", from, to)
	return b.String()
}
