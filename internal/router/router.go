package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"aivault/internal/auth"
	"aivault/internal/handler"
	"aivault/internal/middleware"
	"aivault/internal/ratelimit"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	limiter ratelimit.Limiter,
	authHandler *handler.AuthHandler,
	analysisHandler *handler.AnalysisHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"message": "Welcome to AI Vault",
			"status":  "System Active",
		})
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/api-docs/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/signup", authHandler.Signup)
	e.POST("/token", authHandler.Token)

	// Secured routes (require JWT authentication). Token verification is
	// delegated to the JWT service so every failure mode yields the same 401.
	secured := e.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.Verify(tokenString)
		},
	}))

	// Analysis routes, rate limited per client address
	limited := secured.Group("", middleware.RateLimit(limiter))
	limited.POST("/analyze", analysisHandler.Analyze)
	limited.POST("/sentiment", analysisHandler.Sentiment)

	secured.GET("/history/:username", analysisHandler.History)

	// Admin routes require the admin role, not just a valid token
	admin := secured.Group("", middleware.RequireAdmin)
	admin.GET("/users", userHandler.ListUsers)
	admin.DELETE("/users/:username", userHandler.DeleteUser)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
