package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(3, time.Minute, WithClock(clock.Now))

	for i := 2; i >= 0; i-- {
		res, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
	}

	res, err := l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, clock.t.Add(time.Minute), res.ResetAt)

	res, err = l.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "keys are independent")

	clock.t = clock.t.Add(time.Minute)
	res, err = l.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, res.Allowed, "a new window starts at the reset time")
	assert.Equal(t, 2, res.Remaining)
}

func TestMemoryLimiter_Purge(t *testing.T) {
	ctx := context.Background()
	clock := &testClock{t: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)}
	l := NewMemoryLimiter(5, time.Minute, WithClock(clock.Now))

	_, _ = l.Allow(ctx, "a")
	clock.t = clock.t.Add(30 * time.Second)
	_, _ = l.Allow(ctx, "b")
	clock.t = clock.t.Add(40 * time.Second)

	assert.Equal(t, 1, l.Purge())
	assert.Equal(t, 1, l.Len())
}
