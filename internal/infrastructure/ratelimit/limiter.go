// Package ratelimit provides fixed-window request limiters. The memory
// limiter serves a single instance; the Redis limiter shares counters
// across instances.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the state of a key's window after one hit
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter counts hits per key within a fixed window
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func newResult(count int64, limit int, resetAt time.Time) Result {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}
