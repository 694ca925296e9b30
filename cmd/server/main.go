package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mercalista/backend/config"
	httpDelivery "github.com/mercalista/backend/internal/delivery/http"
	"github.com/mercalista/backend/internal/domain"
	"github.com/mercalista/backend/internal/infrastructure/cache"
	"github.com/mercalista/backend/internal/infrastructure/catalog"
	"github.com/mercalista/backend/internal/logger"
	"github.com/mercalista/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load .env before the config reads the environment
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("starting mercalista-api",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cacheType", cfg.Cache.Type),
		zap.Duration("cacheTTL", cfg.Cache.TTL))

	// Initialize infrastructure dependencies
	cacheRepo, closeCache, err := newCache(cfg)
	if err != nil {
		zapLogger.Fatal("failed to initialize cache", zap.Error(err))
	}
	defer func() {
		if err := closeCache(); err != nil {
			zapLogger.Warn("cache close failed", zap.Error(err))
		}
	}()

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.RateLimit.Catalog, zapLogger)
	catalogRepo := catalog.NewCachedCatalog(catalogClient, cacheRepo, cfg.Cache.TTL, zapLogger)

	zapLogger.Info("catalog provider configured",
		zap.String("baseUrl", cfg.Catalog.BaseURL),
		zap.Bool("apiKeySet", cfg.Catalog.APIKey != ""),
		zap.Int("rateLimitRps", cfg.RateLimit.Catalog))

	// Initialize usecase layer
	matcher := usecase.NewMatcherService(catalogRepo, usecase.MatcherConfig{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		MaxAlternatives:     cfg.Matching.MaxAlternatives,
	}, zapLogger)

	optimizer := usecase.NewOptimizerService(matcher, catalogRepo, usecase.OptimizerConfig{
		MaxStores:            cfg.Optimizer.MaxStores,
		MinSavingsCents:      cfg.Optimizer.MinSavingsCents,
		LargeSavingsCents:    cfg.Optimizer.LargeSavingsCents,
		IncludeDeliveryCosts: cfg.Optimizer.IncludeDeliveryCosts,
		LookupConcurrency:    cfg.Optimizer.LookupConcurrency,
	}, zapLogger)

	// Create HTTP handler with dependencies and set up the router
	handler := httpDelivery.NewHandler(matcher, optimizer, zapLogger)
	router := httpDelivery.SetupRouter(cfg, handler, zapLogger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Block until an interrupt arrives, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("server exited")
}

// newCache builds the configured cache backend. The second return value
// releases the backend's resources.
func newCache(cfg *config.Config) (domain.CacheRepository, func() error, error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return redisCache, redisCache.Close, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, memoryCache.Close, nil
}
