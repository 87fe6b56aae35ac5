package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/obraerp/backend/internal/infrastructure/auth"
	"github.com/obraerp/backend/internal/infrastructure/config"
	"github.com/obraerp/backend/internal/infrastructure/ratelimit"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory builds the shared-state backends (rate limiters, session
// blacklist) on Redis when it is enabled and reachable, or in process
// memory otherwise.
type Factory struct {
	cfg                   config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool

	mu        sync.Mutex
	client    *redis.Client
	blacklist auth.TokenBlacklist
	purgers   []func() int
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// memory backends instead of failing startup. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Connect opens the Redis connection when Redis is enabled
func (f *Factory) Connect(ctx context.Context) error {
	if !f.cfg.Enabled {
		f.logger.Info("Redis disabled, using in-memory rate limits and session blacklist")
		return nil
	}
	client, err := NewRedisClient(ctx, f.cfg)
	if err != nil {
		if !f.allowInMemoryFallback {
			return fmt.Errorf("redis required but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory backends. "+
			"Rate limits and logouts will not be shared between instances.",
			zap.Error(err))
		return nil
	}
	f.mu.Lock()
	f.client = client
	f.mu.Unlock()
	f.logger.Info("Connected to Redis", zap.String("addr", f.cfg.Addr()))
	return nil
}

// Client returns the Redis client, or nil when running on memory backends
func (f *Factory) Client() *redis.Client {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.client
}

// TokenBlacklist returns the session blacklist. Repeated calls return the
// same instance.
func (f *Factory) TokenBlacklist() auth.TokenBlacklist {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.blacklist != nil {
		return f.blacklist
	}
	if f.client != nil {
		f.blacklist = auth.NewRedisTokenBlacklist(f.client)
	} else {
		mem := auth.NewInMemoryTokenBlacklist()
		f.purgers = append(f.purgers, mem.Purge)
		f.blacklist = mem
	}
	return f.blacklist
}

// Limiter returns a fixed-window limiter named for the route group it guards
func (f *Factory) Limiter(name string, limit int, period time.Duration) ratelimit.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.client != nil {
		return ratelimit.NewRedisLimiter(f.client, name, limit, period)
	}
	mem := ratelimit.NewMemoryLimiter(limit, period)
	f.purgers = append(f.purgers, mem.Purge)
	return mem
}

// Purge drops expired in-memory state and returns the number of entries
// removed. It is a no-op for Redis, which expires keys itself.
func (f *Factory) Purge() int {
	f.mu.Lock()
	purgers := append([]func() int(nil), f.purgers...)
	f.mu.Unlock()

	removed := 0
	for _, purge := range purgers {
		removed += purge()
	}
	return removed
}

// Close releases the Redis connection
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.client == nil {
		return nil
	}
	err := f.client.Close()
	f.client = nil
	return err
}
