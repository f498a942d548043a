// Package metrics provides Prometheus metrics collection for the print quote service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// QuotesTotal counts computed quotes by print mode and outcome.
	QuotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_quotes_total",
			Help: "Total number of print quotes",
		},
		[]string{"color_mode", "duplex_mode", "status"},
	)

	// QuoteDuration tracks end-to-end quote latency, including pricing lookup.
	QuoteDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "print_quote_duration_seconds",
			Help:    "Print quote duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		},
	)

	// QuotedPages tracks the resolved page count of quotes.
	QuotedPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "print_quoted_pages",
			Help:    "Resolved page count per quote",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 250, 500, 1000},
		},
	)

	// DefaultTierFallbacksTotal counts quotes priced with a built-in default tier.
	DefaultTierFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_pricing_default_fallbacks_total",
			Help: "Quotes priced with a built-in default tier because the shop had none",
		},
		[]string{"cell"},
	)

	// PricingUpdatesTotal counts pricing configuration writes.
	PricingUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "print_pricing_updates_total",
			Help: "Total number of pricing configuration updates",
		},
		[]string{"scope", "status"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"},
	)

	// CacheSize tracks current cache size.
	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Current cache size",
		},
		[]string{"cache"},
	)

	// PanicsTotal counts handler panics recovered by the HTTP stack.
	PanicsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_panics_recovered_total",
			Help: "Total number of recovered handler panics",
		},
		[]string{"path"},
	)

	// CircuitBreakerState exposes breaker state (0 closed, 1 half-open, 2 open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordQuote records metrics for a computed quote.
func RecordQuote(duration time.Duration, colorMode, duplexMode, status string, pages int) {
	QuoteDuration.Observe(duration.Seconds())
	QuotesTotal.WithLabelValues(colorMode, duplexMode, status).Inc()
	if status == "success" {
		QuotedPages.Observe(float64(pages))
	}
}

// RecordDefaultTierFallback records that a quote used the default tier for cell.
func RecordDefaultTierFallback(cell string) {
	DefaultTierFallbacksTotal.WithLabelValues(cell).Inc()
}

// RecordPricingUpdate records a pricing write. scope is "shop" or "system".
func RecordPricingUpdate(scope, status string) {
	PricingUpdatesTotal.WithLabelValues(scope, status).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(cache, operation, result string) {
	CacheOperationsTotal.WithLabelValues(cache, operation, result).Inc()
}

// UpdateCacheSize sets the current size of the named cache.
func UpdateCacheSize(cache string, size int) {
	CacheSize.WithLabelValues(cache).Set(float64(size))
}

// SetCircuitBreakerState publishes the numeric state of a circuit breaker.
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// RecordPanic counts a recovered panic on the route template path.
func RecordPanic(path string) {
	if path == "" {
		path = "unmatched"
	}
	PanicsTotal.WithLabelValues(path).Inc()
}
