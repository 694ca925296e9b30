// Package metrics provides Prometheus instrumentation for the matching and
// optimization engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MatchesTotal counts computed product matches, partitioned by match type.
	MatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mercalista_matches_total",
		Help: "Total product matches computed",
	}, []string{"match_type"})

	// OptimizationsTotal counts optimization runs, partitioned by strategy.
	OptimizationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mercalista_optimizations_total",
		Help: "Total optimization runs",
	}, []string{"strategy"})

	// OptimizationDuration tracks optimization run latency by strategy.
	OptimizationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mercalista_optimization_duration_seconds",
		Help:    "Optimization run duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy"})

	// CatalogRequestsTotal counts upstream catalog calls by operation and status.
	CatalogRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mercalista_catalog_requests_total",
		Help: "Total requests to the catalog provider",
	}, []string{"operation", "status"})

	// CacheLookupsTotal counts catalog cache lookups by outcome (hit/miss/error).
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mercalista_cache_lookups_total",
		Help: "Total catalog cache lookups",
	}, []string{"outcome"})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mercalista_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mercalista_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "path"})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware returns a gin middleware that records request metrics.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start).Seconds()

		// Use the route pattern for the path label to avoid high cardinality.
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
