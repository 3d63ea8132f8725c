package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"aivault/internal/auth"
	"aivault/internal/model"
)

// CurrentClaims returns the verified token claims stored on the context by
// the JWT middleware, or nil when the request is unauthenticated.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get("user").(*auth.Claims)
	return claims
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// Possessing a valid token is not enough for the user-management routes.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := CurrentClaims(c)
		if claims == nil || claims.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}
