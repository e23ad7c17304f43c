package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ideaforge/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CheckRateLimit counts one hit for id on resource within window.
// Returns true if allowed, false if limit exceeded.
func CheckRateLimit(ctx context.Context, rdb *redis.Client, resource, id string, limit int, window time.Duration) (bool, error) {
	if rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", resource, id)

	// INCR and set EXPIRE if new
	cnt, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		if err := rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return cnt <= int64(limit), nil
}

// RateLimit enforces limit requests per window, keyed by user when logged in and by client IP otherwise.
// With no Redis client the middleware is a no-op, and store errors let the request through.
func RateLimit(rdb *redis.Client, resource string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		id := "ip:" + c.ClientIP()
		if uid := CurrentUserID(c); uid != 0 {
			id = fmt.Sprintf("user:%d", uid)
		}

		allowed, err := CheckRateLimit(c.Request.Context(), rdb, resource, id, limit, window)
		if err != nil {
			observability.RateLimiterErrors.Inc()
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "resource", resource, "error", err)
			c.Next()
			return
		}
		if !allowed {
			observability.RateLimited.WithLabelValues(resource).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
