package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/applytrack/applytrack/internal/metrics"
	"github.com/applytrack/applytrack/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// RateLimit caps requests per client address and route within a fixed
// window. A store failure fails open: availability over strictness for
// a best-effort limiter.
func RateLimit(store ratelimit.Store, limit int, window time.Duration, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := c.ClientIP() + ":" + route

		count, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.ErrorContext(c.Request.Context(), "rate limit store", "error", err)
			c.Next()
			return
		}

		if count > limit {
			metrics.RateLimitedTotal.WithLabelValues(route).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, try again later",
				"code":  "rate_limited",
			})
			return
		}

		c.Next()
	}
}
