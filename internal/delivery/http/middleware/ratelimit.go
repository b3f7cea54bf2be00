package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/climblink/backend/internal/logger"
)

// RateLimit enforces `limit` requests per `window` per client IP using a
// Redis counter. A nil client or a Redis failure lets the request through,
// so an unavailable cache never takes the API down with it.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("rl:%s", c.ClientIP())

		cnt, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			if log != nil {
				log.Warn("rate limit check failed, allowing request", "error", err)
			}
			c.Next()
			return
		}
		if cnt == 1 {
			rdb.Expire(ctx, key, window)
		}
		if cnt > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		c.Next()
	}
}
