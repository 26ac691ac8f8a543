package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"fandomhub/database"
	"fandomhub/internal/config"
	"fandomhub/internal/microservices/http-api/middleware"
	"fandomhub/internal/microservices/http-api/service"
	"fandomhub/internal/microservices/websocket"
	"fandomhub/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger := logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.OpenGorm(cfg, appLogger)
	if err != nil {
		appLogger.Error("database_open_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.Migrate(db, appLogger); err != nil {
		appLogger.Error("database_migrate_failed", "error", err)
		os.Exit(1)
	}

	bridgeCtx, stopBridge := context.WithCancel(context.Background())
	defer stopBridge()

	hub := websocket.NewHub(appLogger)
	pusher, redisClient, err := buildPusher(bridgeCtx, cfg, hub, appLogger)
	if err != nil {
		appLogger.Error("redis_setup_failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	limiter := middleware.NewRateLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst)
	defer limiter.Stop()

	router := newRouter(cfg, db, hub, pusher, limiter, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("http_server_listening", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("http_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutdown_started")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown does not wait for hijacked websocket connections
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("http_server_shutdown_failed", "error", err)
	}
	hub.Close()
	stopBridge()

	appLogger.Info("shutdown_complete")
}

// buildPusher returns the hub directly, or a redis bridge in front of it when
// REDIS_URL is set so every instance delivers to its own sockets
func buildPusher(ctx context.Context, cfg *config.Config, hub *websocket.Hub, logger *slog.Logger) (service.Pusher, *redis.Client, error) {
	if !cfg.RedisEnabled() {
		logger.Info("notification_fanout", "mode", "local")
		return hub, nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	bridge := websocket.NewRedisBridge(client, cfg.NotificationChannel, hub, logger)
	go func() {
		if err := bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("redis_bridge_failed", "error", err)
		}
	}()

	logger.Info("notification_fanout", "mode", "redis", "channel", cfg.NotificationChannel)
	return bridge, client, nil
}
