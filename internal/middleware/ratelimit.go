package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a gin middleware enforcing a fixed-window request limit
// per client. Authenticated requests are keyed by user id, anonymous ones by
// client IP. A Redis outage fails open: limiting is protection, not a
// correctness requirement.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var client string
		if id, ok := c.Get(CtxUserID); ok {
			client = fmt.Sprintf("u:%v", id)
		} else {
			client = "ip:" + c.ClientIP()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.Request.URL.Path, client)
		ctx := c.Request.Context()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": "rate limit exceeded",
				"data":    nil,
			})
			return
		}

		c.Next()
	}
}
