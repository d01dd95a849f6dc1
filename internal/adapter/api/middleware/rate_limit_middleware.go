package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/infrastructure/ratelimit"
	"github.com/fexraizen/lister-sub001/pkg/logger"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles an authenticated action per user. It runs after
// Authenticate, so an absent uid means a wiring mistake and the request is
// rejected rather than let through unmetered.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid, ok := c.Get("uid").(string)
			if !ok || uid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			allowed, wait := m.limiter.Allow(uid, action)
			if !allowed {
				logger.Warn("Rate limit hit for user %s on %s, retry in %v", uid, action, wait)
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"error":       "Rate limit exceeded",
					"retry_after": int(wait / time.Second),
				})
			}

			return next(c)
		}
	}
}
