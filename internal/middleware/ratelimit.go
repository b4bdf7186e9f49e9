package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/itcommunity/platform/internal/app/models/dto"
)

// Fixed window counter. The first request in a window sets the TTL, requests
// past the limit are rejected until the key expires.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
if current > tonumber(ARGV[2]) then
  return 0
end
return 1
`

// RedisLimiter implements a fixed-window rate limiter backed by Redis
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script
}

// NewRedisLimiter creates a new RedisLimiter. A nil client yields a limiter
// that allows everything, so rate limiting can be switched off in config.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	if client == nil {
		return nil
	}
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(rateLimitScript),
	}
}

// Allow reports whether the request identified by key fits in the window.
// Redis failures fail open: limiting is protection, not a dependency.
func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}

	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	allowed, err := l.script.Run(ctx, l.client, []string{key}, ttl, limit).Int64()
	if err != nil {
		return true
	}
	return allowed == 1
}

// Limiter reports whether a request identified by key fits in its window
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimit rejects clients that exceed the per-IP request budget
func RateLimit(limiter Limiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		if !limiter.Allow(key, limit, window) {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeRateLimited, "Too many requests").
				WithDetails("Request rate limit exceeded, slow down")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}
