package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aivault/internal/ratelimit"
)

// RateLimit enforces a per-route, per-client-address request limit. Clients
// are independent of each other; the key combines route path and caller IP.
func RateLimit(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Path() + ":" + c.RealIP()
			if !limiter.Allow(c.Request().Context(), key) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
