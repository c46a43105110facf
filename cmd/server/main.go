package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/terminal-bench/supportdesk/internal/audit"
	"github.com/terminal-bench/supportdesk/internal/config"
	"github.com/terminal-bench/supportdesk/internal/engine"
	"github.com/terminal-bench/supportdesk/internal/handlers"
	"github.com/terminal-bench/supportdesk/internal/middleware"
	"github.com/terminal-bench/supportdesk/internal/models"
	"github.com/terminal-bench/supportdesk/internal/notify"
	"github.com/terminal-bench/supportdesk/internal/responder"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink, counter, closeSink := buildSink(cfg, logger)
	defer closeSink()

	limiter := buildLimiter(ctx, cfg, logger)

	dispatcher := engine.NewDispatcher(cfg, limiter, sink, responder.NewTemplateRegistry(), logger,
		engineOptions(cfg, logger)...)
	router := setupRouter(cfg, dispatcher, counter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("listen failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}

// buildSink prefers the postgres audit sink and falls back to process memory
// when the database is unreachable, so the service still answers requests
// during a database outage.
func buildSink(cfg *config.Config, logger *slog.Logger) (audit.Sink, audit.Counter, func()) {
	pg, err := audit.NewPostgresSink(cfg.DatabaseURL)
	if err != nil {
		logger.Warn("postgres audit sink unavailable, using memory sink", "error", err)
		mem := audit.NewMemorySink()
		return mem, mem, func() {}
	}
	logger.Info("audit sink connected", "backend", "postgres")
	return pg, pg, func() {
		if err := pg.Close(); err != nil {
			logger.Error("failed to close audit sink", "error", err)
		}
	}
}

// buildLimiter selects the rate limiter backend. Redis serves multi-instance
// deployments; the in-process sliding window is the default.
func buildLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) engine.RateLimiter {
	if os.Getenv("RATE_LIMIT_BACKEND") == "redis" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("invalid redis url", "error", err)
			os.Exit(1)
		}
		logger.Info("rate limiter connected", "backend", "redis")
		return engine.NewRedisLimiter(redis.NewClient(opts), cfg.RateLimitWindow, cfg.RateLimitCapacity)
	}

	limiter := engine.NewSlidingWindowLimiter(cfg.RateLimitWindow, cfg.RateLimitCapacity)
	limiter.StartCleanup(ctx, 10*time.Minute)
	return limiter
}

// engineOptions wires optional collaborators. With NOTIFY_BACKEND=redis,
// escalation events are published to a pub/sub channel for on-call tooling.
func engineOptions(cfg *config.Config, logger *slog.Logger) []engine.Option {
	if os.Getenv("NOTIFY_BACKEND") != "redis" {
		return nil
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Error("invalid redis url", "error", err)
		os.Exit(1)
	}
	notifier := notify.NewRedisNotifier(redis.NewClient(opts), os.Getenv("NOTIFY_CHANNEL"), logger)
	return []engine.Option{engine.WithNotifier(notifier)}
}

func setupRouter(cfg *config.Config, dispatcher *engine.Dispatcher, counter audit.Counter) *gin.Engine {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	supportHandler := handlers.NewSupportHandler(dispatcher, counter)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg))
	{
		api.POST("/support/request", supportHandler.Submit)
		api.POST("/support/emergency", supportHandler.Emergency)
		api.POST("/support/billing", supportHandler.Category(models.CategoryBilling))
		api.POST("/support/technical", supportHandler.Category(models.CategoryTechnical))
		api.POST("/support/escalation", supportHandler.Category(models.CategoryEscalation))
		api.GET("/support/status", supportHandler.Status)
	}

	return router
}
