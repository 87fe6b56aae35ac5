package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/obraerp/backend/internal/infrastructure/ratelimit"
	"github.com/obraerp/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RateLimitRecorder counts denied requests per route group
type RateLimitRecorder interface {
	RecordRateLimited(ctx context.Context, group string)
}

// RateLimitConfig configures the RateLimit middleware
type RateLimitConfig struct {
	// Group names the limited routes in logs and metrics
	Group    string
	Limiter  ratelimit.Limiter
	Recorder RateLimitRecorder
	Logger   *zap.Logger
	// KeyFunc defaults to the client IP
	KeyFunc func(*gin.Context) string
}

// RateLimit applies a fixed-window limit per client. Limiter errors are
// logged and the request is let through.
func RateLimit(cfg RateLimitConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	keyFunc := cfg.KeyFunc
	if keyFunc == nil {
		keyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := cfg.Group + ":" + keyFunc(c)

		res, err := cfg.Limiter.Allow(ctx, key)
		if err != nil {
			log.Warn("Rate limiter unavailable, allowing request",
				zap.String("group", cfg.Group), zap.Error(err))
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			if retry := time.Until(res.ResetAt); retry > 0 {
				h.Set("Retry-After", strconv.Itoa(int(retry.Seconds())+1))
			}
			if cfg.Recorder != nil {
				cfg.Recorder.RecordRateLimited(ctx, cfg.Group)
			}
			log.Info("Rate limit exceeded",
				zap.String("group", cfg.Group), zap.String("client_ip", c.ClientIP()))
			abort(c, http.StatusTooManyRequests, dto.ErrCodeRateLimited, "Too many requests. Please try again later.")
			return
		}
		c.Next()
	}
}
