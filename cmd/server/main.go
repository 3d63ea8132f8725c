package main

import (
	"log"
	"net/http"

	"aivault/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"aivault/internal/auth"
	"aivault/internal/cache"
	"aivault/internal/config"
	"aivault/internal/db"
	"aivault/internal/handler"
	"aivault/internal/inference"
	"aivault/internal/model"
	"aivault/internal/ratelimit"
	"aivault/internal/repository"
	"aivault/internal/router"
	"aivault/internal/service"
)

// @title AI Vault API
// @version 1.0
// @description Text summarization and sentiment analysis API with JWT authentication.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Scan{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Rate limiting counts in Redis when configured so limits hold across
	// replicas; otherwise a per-process counter is used.
	var limiter ratelimit.Limiter
	if cfg.RedisAddr != "" {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		limiter = ratelimit.NewRedisLimiter(cacheClient, cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	scanRepo := repository.NewScanRepository(gormDB)

	// Initialize auth and inference components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL)
	gateway := inference.New(cfg.InferenceMirrors, cfg.InferenceAPIKey, inference.DefaultRetryPolicy())
	analyzer := inference.NewAnalyzer(gateway, cfg.SummaryModel, cfg.SentimentModel)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	analysisService := service.NewAnalysisService(analyzer, scanRepo)
	userService := service.NewUserService(userRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	analysisHandler := handler.NewAnalysisHandler(analysisService)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(
		e,
		jwtService,
		limiter,
		authHandler,
		analysisHandler,
		userHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
