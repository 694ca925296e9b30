package http

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mercalista/backend/config"
	"github.com/mercalista/backend/internal/metrics"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(requestid.New())
	router.Use(RequestLogger(logger))
	router.Use(gin.Recovery())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	router.Use(metrics.GinMiddleware())

	// Health check and Prometheus metrics
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		matches := v1.Group("/matches")
		{
			matches.POST("/search", handler.SearchMatches)
		}

		optimize := v1.Group("/optimize")
		{
			optimize.POST("/price", handler.OptimizePrice)
			optimize.POST("/availability", handler.OptimizeAvailability)
		}

		supermarkets := v1.Group("/supermarkets")
		{
			supermarkets.POST("/compare", handler.CompareSupermarkets)
		}
	}

	return router
}
