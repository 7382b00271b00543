package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/loginguard/auth-system/docs"
	"github.com/loginguard/auth-system/internal/api/handler"
	"github.com/loginguard/auth-system/internal/api/middleware"
	"github.com/loginguard/auth-system/internal/core/ports"
	"github.com/loginguard/auth-system/internal/core/service"
	"github.com/loginguard/auth-system/internal/infrastructure/config"
	mongodb "github.com/loginguard/auth-system/internal/infrastructure/db/mongo"
	redisdb "github.com/loginguard/auth-system/internal/infrastructure/db/redis"
	"github.com/loginguard/auth-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AttemptSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	revocations := redisdb.NewRevocationList(rdb)
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, cfg.Auth.RefreshGrace, revocations)
	gate := service.NewAttemptGate(userRepo, cfg.Auth.LockoutThreshold, log)
	authService := service.NewAuthService(userRepo, gate, tokenService, audit, log)
	authHandler := handler.NewAuthHandler(authService)
	authMiddleware := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	// Refresh reads the bearer itself: a token expired within the grace
	// window must still reach the handler.
	e.POST("/refresh", authHandler.Refresh)
	e.POST("/logout", authHandler.Logout, authMiddleware)
	e.GET("/profile", authHandler.Profile, authMiddleware)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
