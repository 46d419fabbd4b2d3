package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/auth"
	"github.com/pratyush0898/OnlyCodes/internal/cache"
	"github.com/pratyush0898/OnlyCodes/internal/config"
	"github.com/pratyush0898/OnlyCodes/internal/container"
	"github.com/pratyush0898/OnlyCodes/internal/database"
	"github.com/pratyush0898/OnlyCodes/internal/handlers"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/middleware"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/storage"
	"github.com/pratyush0898/OnlyCodes/internal/telemetry"
	"github.com/pratyush0898/OnlyCodes/internal/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	serviceName     = "onlycodes-api"
	shutdownTimeout = 30 * time.Second
	// devJWTSecret only signs tokens outside production when none is configured
	devJWTSecret = "onlycodes-dev-secret"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Close() }()

		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger.Log.Info("OnlyCodes server starting", zap.String("environment", cfg.Environment))

	metrics.Initialize()

	tp, err := telemetry.InitTracer(ctx, telemetry.Config{
		ServiceName:  serviceName,
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.Tracing.Endpoint,
		Enabled:      cfg.Tracing.Enabled,
		SamplingRate: cfg.Tracing.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	c := container.New().WithLogger(logger.Log)
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := c.Cleanup(cleanupCtx); err != nil {
			logger.Log.Warn("Cleanup finished with errors", zap.Error(err))
		}
	}()
	if tp != nil {
		c.OnCleanup(tp.Shutdown)
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	c.WithDB(db).OnCleanup(func(context.Context) error { return database.Close(db) })

	checks := map[string]validation.Check{
		"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
	}

	var counters middleware.CounterStore
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password)
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting is per instance", zap.Error(err))
		} else {
			c.WithCache(redisClient).OnCleanup(func(context.Context) error { return redisClient.Close() })
			counters = redisClient
			checks["redis"] = redisClient.Ping
		}
	}

	if cfg.Storage.Enabled() {
		uploader, err := storage.NewS3Uploader(ctx, cfg.Storage.Region, cfg.Storage.Bucket, cfg.Storage.CDNURL)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 uploader: %w", err)
		}
		if err := uploader.CheckBucketAccess(ctx); err != nil {
			logger.Log.Warn("S3 bucket access failed, uploads may fail", zap.Error(err))
		}
		c.WithMediaUploader(uploader)
		checks["s3"] = uploader.CheckBucketAccess
	}

	secret := cfg.JWT.Secret
	if secret == "" {
		logger.Log.Warn("jwt.secret not set, using the development secret")
		secret = devJWTSecret
	}
	authService := auth.NewService([]byte(secret), cfg.JWT.TTL)
	c.WithAuthService(authService)

	if err := c.Validate(); err != nil {
		return err
	}
	if err := validation.NewServiceValidator(cfg.RequiredServices, checks).ValidateServices(ctx); err != nil {
		return err
	}

	router := newRouter(cfg, c, counters)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Log.Info("OnlyCodes API listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	logger.Log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Log.Info("Server exited")
	return nil
}

func newRouter(cfg *config.Config, c *container.Container, counters middleware.CounterStore) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.HeaderRequestID}
	corsConfig.ExposeHeaders = []string{middleware.HeaderRequestID, "Retry-After", "X-RateLimit-Remaining"}
	r.Use(cors.New(corsConfig))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	if cfg.Tracing.Enabled {
		r.Use(middleware.TracingMiddleware(serviceName)...)
	}
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	h := handlers.NewHandlers(c, repository.Limits{
		DefaultSize: cfg.Feed.PageSize,
		MaxSize:     cfg.Feed.MaxPageSize,
	})

	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := middleware.RedisRateLimitMiddleware(counters, middleware.RateLimitConfig{
		Limit:   cfg.RateLimit.Requests,
		Window:  cfg.RateLimit.Window,
		KeyFunc: middleware.ClientKey,
	})
	uploadLimit := middleware.NewRateLimiter(middleware.UploadRateLimitConfig())

	// sessions are resolved before limiting so signed-in users get their own bucket
	api := r.Group("/api/v1", middleware.OptionalAuth(c.Auth()), limit)
	h.RegisterRoutes(api, c.Auth(), uploadLimit)

	return r
}
