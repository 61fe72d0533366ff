package middleware

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"coachdesk/internal/handler/httperr"
	"coachdesk/internal/pkg/config"
	"coachdesk/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("rate limit exceeded")

type RateLimitMiddleware struct {
	limiter shared.RateLimiter
	cfg     config.RateLimitConfig
}

func NewRateLimitMiddleware(limiter shared.RateLimiter, cfg config.Config) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter, cfg: cfg.RateLimit}
}

// Limit allows limit requests per client IP per configured window on this route.
// A limiter outage lets the request through.
func (m *RateLimitMiddleware) Limit(name string, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.cfg.Enabled {
			c.Next()
			return
		}

		key := name + ":" + c.ClientIP()
		decision, err := m.limiter.Allow(c.Request.Context(), key, limit, m.cfg.Window)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "route", name, "error", err.Error())
			c.Next()
			return
		}

		if !decision.Allowed {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(decision.RetryAfter)))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many requests", nil)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) int {
	s := int(math.Ceil(d.Seconds()))
	if s < 1 {
		return 1
	}
	return s
}
