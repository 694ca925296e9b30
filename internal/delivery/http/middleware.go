package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mercalista/backend/internal/domain"
)

// CORSMiddleware restricts cross-origin requests to the configured origins.
// A single "*" entry opens the API to any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-Id"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowWildcard = true
	corsConfig.MaxAge = 12 * time.Hour

	allowAll := false
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			break
		}
	}

	if allowAll {
		corsConfig.AllowAllOrigins = true
		// Browsers reject credentialed requests against a wildcard origin
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = allowedOrigins
	}

	return cors.New(corsConfig)
}

// RequestLogger logs one structured line per completed request
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("clientIp", c.ClientIP()),
			zap.String("requestId", requestid.Get(c)))
	}
}

// RateLimitMiddleware enforces a per-client request budget of requestsPerSecond,
// with an equal burst. Zero or negative disables the limit. One limiter is kept
// per client address for the lifetime of the process.
func RateLimitMiddleware(requestsPerSecond int) gin.HandlerFunc {
	if requestsPerSecond <= 0 {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	var limiters sync.Map

	return func(c *gin.Context) {
		value, _ := limiters.LoadOrStore(c.ClientIP(), rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond))
		limiter := value.(*rate.Limiter)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":     domain.ErrRateLimited.Error(),
				"requestId": requestid.Get(c),
			})
			return
		}

		c.Next()
	}
}
