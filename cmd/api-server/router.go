package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"gorm.io/gorm"

	"fandomhub/internal/config"
	"fandomhub/internal/microservices/http-api/handler"
	"fandomhub/internal/microservices/http-api/middleware"
	"fandomhub/internal/microservices/http-api/repository"
	"fandomhub/internal/microservices/http-api/service"
	"fandomhub/internal/microservices/websocket"
)

// newRouter wires repositories, services and handlers onto a gin engine
func newRouter(
	cfg *config.Config,
	db *gorm.DB,
	hub *websocket.Hub,
	pusher service.Pusher,
	limiter *middleware.RateLimiter,
	logger *slog.Logger,
) http.Handler {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	handler.RegisterValidators()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	gameRepo := repository.NewGameRepository(db)
	fandomRepo := repository.NewFandomRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	viewedRepo := repository.NewViewedRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	notificationService := service.NewNotificationService(notificationRepo, viewedRepo, fandomRepo, subscriptionRepo, pusher, logger)
	viewedService := service.NewViewedStateService(notificationRepo, viewedRepo, logger)
	gameService := service.NewGameService(gameRepo)
	fandomService := service.NewFandomService(fandomRepo, gameRepo, subscriptionRepo)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, fandomRepo)
	postService := service.NewPostService(postRepo, fandomRepo, notificationService, logger)
	commentService := service.NewCommentService(commentRepo, postRepo)
	reactionService := service.NewReactionService(reactionRepo, postRepo)
	eventService := service.NewEventService(eventRepo, fandomRepo, notificationService, logger)

	r := gin.New()
	r.Use(middleware.AccessLogger(nil))
	r.Use(gin.Recovery())

	var pinger handler.Pinger
	if sqlDB, err := db.DB(); err == nil {
		pinger = sqlDB
	}
	r.GET("/health", handler.NewHealthHandler(pinger).Health)

	authRoutes := r.Group("/api/auth")
	handler.NewAuthHandler(authService).RegisterRoutes(authRoutes, limiter.Limit())

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(authService))
	{
		handler.NewGameHandler(gameService, fandomService).RegisterRoutes(api)
		handler.NewFandomHandler(fandomService, subscriptionService).RegisterRoutes(api)
		handler.NewPostHandler(postService, reactionService).RegisterRoutes(api)
		handler.NewCommentHandler(commentService).RegisterRoutes(api)
		handler.NewEventHandler(eventService).RegisterRoutes(api)
		handler.NewNotificationHandler(notificationService, viewedService).RegisterRoutes(api)
	}

	ws := websocket.NewHandler(hub, cfg.CORSOrigins, cfg.WSSendBuffer)
	r.GET("/ws/notifications", middleware.WebSocketAuthMiddleware(authService), ws.ServeWS)

	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	})(r)
}
