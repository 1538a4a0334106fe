package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/socialnet/friends-api/docs"
	"github.com/socialnet/friends-api/internal/api/handler"
	"github.com/socialnet/friends-api/internal/api/middleware"
	"github.com/socialnet/friends-api/internal/core/ports"
	"github.com/socialnet/friends-api/internal/core/service"
	"github.com/socialnet/friends-api/internal/infrastructure/config"
	mongodb "github.com/socialnet/friends-api/internal/infrastructure/db/mongo"
	redisdb "github.com/socialnet/friends-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	cfg *config.Config,
	notifications ports.NotificationService,
	queue ports.NotificationQueue,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("friends"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	friendRepo := mongodb.NewFriendRepository(db)
	limiter := redisdb.NewSendLimiter(rdb, cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, 24*time.Hour)
	userService := service.NewUserService(userRepo, log)
	friendService := service.NewFriendService(friendRepo, userRepo, limiter, queue, log)

	authHandler := handler.NewAuthHandler(authService, 24*time.Hour)
	userHandler := handler.NewUserHandler(userService)
	friendHandler := handler.NewFriendHandler(friendService, notifications)

	session := middleware.Session(cfg.JWTSecret, handler.SessionCookie)

	// --- User routes ---
	user := e.Group("/user/api/v1")
	user.POST("/signup/", authHandler.Signup)
	user.POST("/login/", authHandler.Login)
	user.POST("/logout/", authHandler.Logout, session)
	user.GET("/search/", userHandler.Search, session)

	// --- Friend routes ---
	friends := e.Group("/api/v1", session)
	friends.POST("/friend-request/", friendHandler.Actions)
	friends.GET("/friends/", friendHandler.Friends)
	friends.GET("/pending-friend-requests/", friendHandler.PendingRequests)
	friends.GET("/notifications/", friendHandler.Notifications)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
