package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"appointment-engine/internal/handler/httperr"
	"appointment-engine/internal/infra/redisstore"
	"appointment-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errs.New("rate limit exceeded")

type RateLimiter interface {
	Allow(ctx context.Context, key string) (redisstore.RateDecision, error)
}

// RateLimit counts requests per value of the named path parameter. When
// Redis is unreachable the request passes if failOpen is set.
func RateLimit(rl RateLimiter, param string, failOpen bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param(param)
		if key == "" {
			key = c.ClientIP()
		}

		d, err := rl.Allow(c.Request.Context(), key)
		if err != nil {
			slog.Warn("redis rate limiter error", "error", err.Error())
			if failOpen {
				c.Next()
				return
			}
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Rate limiter unavailable", nil)
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(d.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
		if !d.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(d.ResetIn.Seconds())+1))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
