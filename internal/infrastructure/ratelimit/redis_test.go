package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter_BackendDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, "system", 3, time.Minute)
	_, err := l.Allow(context.Background(), "10.0.0.1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit counter")
}

func TestNewResult(t *testing.T) {
	reset := time.Now()
	assert.Equal(t, Result{Allowed: true, Limit: 2, Remaining: 1, ResetAt: reset}, newResult(1, 2, reset))
	assert.Equal(t, Result{Allowed: false, Limit: 2, Remaining: 0, ResetAt: reset}, newResult(5, 2, reset))
}
