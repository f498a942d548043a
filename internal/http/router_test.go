package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

const quoteBody = `{"total_pages": 4, "color_mode": "MONOCHROME", "duplex_mode": "SINGLE_SIDED"}`

func newQuoteHandler() *Handler {
	calculator := service.NewPrintCostCalculator()
	quotes := service.NewQuoteService(service.NewPageSelectionResolver(), calculator, service.NewPricingService(nil))
	return NewHandler(quotes, WithDefaultPricing(calculator.Defaults()))
}

func serve(router *gin.Engine, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Endpoints(t *testing.T) {
	router := NewRouter(newQuoteHandler(), NewHealthHandler(), DefaultRouterConfig())

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		expectedStatus int
	}{
		{name: "healthz endpoint", method: http.MethodGet, path: "/healthz", expectedStatus: http.StatusOK},
		{name: "readyz endpoint", method: http.MethodGet, path: "/readyz", expectedStatus: http.StatusOK},
		{name: "metrics endpoint", method: http.MethodGet, path: "/metrics", expectedStatus: http.StatusOK},
		{name: "swagger endpoint", method: http.MethodGet, path: "/swagger/index.html", expectedStatus: http.StatusOK},
		{name: "quote endpoint", method: http.MethodPost, path: "/api/quotes", body: quoteBody, expectedStatus: http.StatusOK},
		{name: "quote without body", method: http.MethodPost, path: "/api/quotes", expectedStatus: http.StatusBadRequest},
		{name: "effective pricing", method: http.MethodGet, path: "/api/pricing", expectedStatus: http.StatusOK},
		{name: "default pricing", method: http.MethodGet, path: "/api/pricing/defaults", expectedStatus: http.StatusOK},
		{name: "management routes need a verifier", method: http.MethodPut, path: "/api/pricing", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, tt.method, tt.path, tt.body, nil)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestRouter_NilHandler(t *testing.T) {
	router := NewRouter(nil, NewHealthHandler(), RouterConfig{})

	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "", nil).Code)
	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodPost, "/api/quotes", quoteBody, nil).Code)
}

func TestRouter_APIKeyAuth(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("shop-terminal-key"), bcrypt.MinCost)
	require.NoError(t, err)

	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{APIKeyHashes: []string{string(hash)}})

	tests := []struct {
		name           string
		path           string
		headers        map[string]string
		expectedStatus int
	}{
		{name: "missing key", path: "/api/quotes", expectedStatus: http.StatusUnauthorized},
		{name: "wrong key", path: "/api/quotes", headers: map[string]string{middleware.APIKeyHeader: "nope"}, expectedStatus: http.StatusUnauthorized},
		{name: "valid header", path: "/api/quotes", headers: map[string]string{middleware.APIKeyHeader: "shop-terminal-key"}, expectedStatus: http.StatusOK},
		{name: "valid query", path: "/api/quotes?api_key=shop-terminal-key", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(router, http.MethodPost, tt.path, quoteBody, tt.headers)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	t.Run("health is not guarded", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/healthz", "", nil).Code)
	})
}

func TestRouter_RateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	defer limiter.Stop()

	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{RateLimiter: limiter})

	for i := 0; i < 2; i++ {
		w := serve(router, http.MethodGet, "/api/pricing/defaults", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := serve(router, http.MethodGet, "/api/pricing/defaults", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
}

func TestRouter_Idempotency(t *testing.T) {
	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{EnableIdempotency: true})
	headers := map[string]string{middleware.IdempotencyKeyHeader: "order-991"}

	first := serve(router, http.MethodPost, "/api/quotes", quoteBody, headers)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, first.Header().Get(middleware.IdempotencyReplayedHeader))

	second := serve(router, http.MethodPost, "/api/quotes", quoteBody, headers)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "true", second.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, first.Body.String(), second.Body.String())

	conflict := serve(router, http.MethodPost, "/api/quotes",
		`{"total_pages": 9, "color_mode": "COLOR", "duplex_mode": "SINGLE_SIDED"}`, headers)
	assert.Equal(t, http.StatusConflict, conflict.Code)
}

func TestRouter_Compression(t *testing.T) {
	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{})
	gzipped := map[string]string{"Accept-Encoding": "gzip"}

	w := serve(router, http.MethodGet, "/api/pricing/defaults", "", gzipped)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

	w = serve(router, http.MethodGet, "/healthz", "", gzipped)
	assert.Empty(t, w.Header().Get("Content-Encoding"))
}

func TestRouter_CORS(t *testing.T) {
	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{CORSOrigins: []string{"https://shop.example.com"}})

	w := serve(router, http.MethodOptions, "/api/quotes", "", map[string]string{
		"Origin":                        "https://shop.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(router, http.MethodOptions, "/api/quotes", "", map[string]string{
		"Origin":                        "https://evil.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_SwaggerBasicAuth(t *testing.T) {
	router := NewRouter(newQuoteHandler(), NewHealthHandler(), RouterConfig{SwaggerUser: "docs", SwaggerPass: "secret"})

	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/swagger/index.html", "", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.SetBasicAuth("docs", "secret")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_ManagementRoutesWithVerifier(t *testing.T) {
	srv := newTestServer(t, true)

	tests := []struct {
		name           string
		method         string
		path           string
		auth           func(t *testing.T) string
		expectedStatus int
	}{
		{name: "history needs a token", method: http.MethodGet, path: "/api/pricing/history", auth: func(*testing.T) string { return "" }, expectedStatus: http.StatusUnauthorized},
		{name: "history as owner", method: http.MethodGet, path: "/api/pricing/history", auth: func(t *testing.T) string { return ownerToken(t, "shop-1") }, expectedStatus: http.StatusOK},
		{name: "audit as customer", method: http.MethodGet, path: "/api/pricing/audit", auth: func(t *testing.T) string { return bearer(t, "c-1", "customer") }, expectedStatus: http.StatusForbidden},
		{name: "audit as admin", method: http.MethodGet, path: "/api/pricing/audit", auth: func(t *testing.T) string { return bearer(t, "ops", middleware.RoleAdmin) }, expectedStatus: http.StatusOK},
		{name: "quote stays public", method: http.MethodGet, path: "/api/pricing/defaults", auth: func(*testing.T) string { return "" }, expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := srv.do(tt.method, tt.path, "", tt.auth(t))
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}
