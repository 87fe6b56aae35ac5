package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "obraerp:ratelimit:"

// RedisLimiter stores one counter per key and window in Redis. The first
// hit of a window sets the expiry, so the window is fixed, not sliding.
type RedisLimiter struct {
	client redis.Cmdable
	name   string
	limit  int
	period time.Duration
}

// NewRedisLimiter creates a limiter whose keys are namespaced by name so
// several limiters can share one Redis database
func NewRedisLimiter(client redis.Cmdable, name string, limit int, period time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, name: name, limit: limit, period: period}
}

// Allow increments the key's counter
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	k := keyPrefix + l.name + ":" + key

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	ttl := pipe.PTTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit counter: %w", err)
	}

	count := incr.Val()
	remaining := ttl.Val()
	if count == 1 || remaining < 0 {
		if err := l.client.PExpire(ctx, k, l.period).Err(); err != nil {
			return Result{}, fmt.Errorf("rate limit expiry: %w", err)
		}
		remaining = l.period
	}
	return newResult(count, l.limit, time.Now().Add(remaining)), nil
}

var _ Limiter = (*RedisLimiter)(nil)
