package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kioskd/api/routes"
	"kioskd/internal/bridge"
	"kioskd/internal/shared/config"
	"kioskd/internal/shared/middleware"
	"kioskd/internal/state"
	"kioskd/pkg/cache"
	"kioskd/pkg/logger"
	"kioskd/pkg/metrics"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize the menu cache. The kiosk keeps working without Redis;
	// the menu is then fetched from the backend on every request.
	var cacheService cache.Service
	if err := cache.Init(cache.Config{
		Address:  cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}); err != nil {
		appLogger.Warn("Redis unavailable, menu caching disabled", slog.Any("error", err))
	} else {
		cacheService = cache.NewService(cache.Client())
		defer cache.Close()
	}

	// Bridge to the order backend. Readiness is polled in the background so
	// the UI can come up and show the splash screen immediately.
	bridgeClient := bridge.NewClient(cfg.Bridge, appLogger)

	readyCtx, readyCancel := context.WithCancel(context.Background())
	defer readyCancel()
	go func() {
		if err := bridgeClient.WaitReady(readyCtx); err != nil {
			appLogger.Error("Order backend never became ready", slog.Any("error", err))
		}
	}()

	// Single source of truth for the kiosk UI
	store := state.NewStore()

	router := setupRouter(cfg, appLogger, bridgeClient, store, cacheService)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Kiosk agent running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("bridge", cfg.Bridge.BaseURL),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", cacheService != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down kiosk agent...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Kiosk agent exited gracefully")
}

func setupRouter(cfg *config.Config, appLogger *logger.Logger, bridgeClient *bridge.Client, store *state.Store, cacheService cache.Service) *gin.Engine {
	engine := gin.New()

	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())
	engine.Use(metrics.Middleware())

	// Only the local webview talks to this API
	engine.Use(middleware.LoopbackOnly())

	// CORS for the webview origin (file:// and dev servers report odd origins)
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, appLogger, bridgeClient, store, cacheService)
	appRouter.SetupRoutes(engine)

	return engine
}
