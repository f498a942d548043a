package metrics

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PrometheusMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "error")
	})

	tests := []struct {
		name           string
		path           string
		label          string
		expectedStatus int
	}{
		{"successful request", "/test", "/test", http.StatusOK},
		{"error request", "/error", "/error", http.StatusInternalServerError},
		{"unmatched route collapses label", "/nope/123", "unmatched", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.label, strconv.Itoa(tt.expectedStatus)))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			after := testutil.ToFloat64(HTTPRequestTotal.WithLabelValues(http.MethodGet, tt.label, strconv.Itoa(tt.expectedStatus)))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordQuote(t *testing.T) {
	success := QuotesTotal.WithLabelValues("COLOR", "SINGLE_SIDED", "success")
	failure := QuotesTotal.WithLabelValues("COLOR", "SINGLE_SIDED", "error")
	beforeOK, beforeErr := testutil.ToFloat64(success), testutil.ToFloat64(failure)

	RecordQuote(2*time.Millisecond, "COLOR", "SINGLE_SIDED", "success", 12)
	RecordQuote(time.Millisecond, "COLOR", "SINGLE_SIDED", "error", 0)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(success))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(failure))
}

func TestRecordDefaultTierFallback(t *testing.T) {
	c := DefaultTierFallbacksTotal.WithLabelValues("COLOR/DOUBLE_SIDED")
	before := testutil.ToFloat64(c)

	RecordDefaultTierFallback("COLOR/DOUBLE_SIDED")

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestRecordPricingUpdate(t *testing.T) {
	c := PricingUpdatesTotal.WithLabelValues("shop", "success")
	before := testutil.ToFloat64(c)

	RecordPricingUpdate("shop", "success")

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestCacheMetrics(t *testing.T) {
	RecordCacheOperation("pricing", "get", "hit")
	UpdateCacheSize("pricing", 7)

	assert.Equal(t, float64(7), testutil.ToFloat64(CacheSize.WithLabelValues("pricing")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(CacheOperationsTotal.WithLabelValues("pricing", "get", "hit")), float64(1))
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("pricing-store", 2)
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("pricing-store")))

	SetCircuitBreakerState("pricing-store", 0)
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("pricing-store")))
}
