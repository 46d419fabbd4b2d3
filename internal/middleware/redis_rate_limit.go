package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/util"
	"go.uber.org/zap"
)

// CounterStore is the subset of the Redis client the distributed limiter needs
type CounterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisRateLimitMiddleware is a fixed-window limiter shared by every
// instance. With no store it falls back to the in-memory limiter.
func RedisRateLimitMiddleware(store CounterStore, config RateLimitConfig) gin.HandlerFunc {
	if store == nil {
		logger.Log.Info("Redis not configured, using in-memory rate limiter")
		return NewRateLimiter(config)
	}
	if config.KeyFunc == nil {
		config.KeyFunc = ClientKey
	}

	return func(c *gin.Context) {
		key := fmt.Sprintf("rate_limit:%s", config.KeyFunc(c))
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		count, err := store.Incr(ctx, key)
		if err != nil {
			// Fail closed: a broken limiter must not open the API
			logger.Log.Error("Rate limit increment failed, rejecting request",
				zap.String("key", key),
				zap.Error(err),
			)
			util.RespondWithAPIError(c, apperrors.ServiceUnavailable("rate limiter"))
			return
		}

		if count == 1 {
			if err := store.Expire(ctx, key, config.Window); err != nil {
				logger.Log.Warn("Failed to set rate limit expiration",
					zap.String("key", key),
					zap.Error(err),
				)
			}
		}

		remaining := config.Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(config.Limit) {
			retryAfter := config.Window
			if ttl, err := store.TTL(ctx, key); err == nil && ttl > 0 {
				retryAfter = ttl
			}
			metrics.RecordRateLimitExceeded("redis", routePath(c))
			logger.Log.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.Int("max_requests", config.Limit),
				zap.Int64("current_requests", count),
			)
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Round(time.Second).Seconds())))
			util.RespondWithAPIError(c, apperrors.RateLimited(""))
			return
		}

		c.Next()
	}
}
