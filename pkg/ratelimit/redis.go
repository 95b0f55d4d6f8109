package ratelimit

import (
	"context"
	"time"

	"github.com/justinloveless/hub-page-builder-sub002/pkg/cache"
)

// RedisLimiter counts with INCR + EXPIRE so the window survives restarts
// and is shared across replicas.
type RedisLimiter struct {
	cache   cache.ICache
	ceiling int
	window  time.Duration
	prefix  string
}

func NewRedisLimiter(c cache.ICache, ceiling int, window time.Duration, prefix string) *RedisLimiter {
	if prefix == "" {
		prefix = "ratelimit:"
	}
	return &RedisLimiter{
		cache:   c,
		ceiling: ceiling,
		window:  window,
		prefix:  prefix,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := r.prefix + key

	count, err := r.cache.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := r.cache.Expire(ctx, redisKey, r.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(r.ceiling), nil
}
