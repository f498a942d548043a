package http

import (
	"net/http"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/print-quote-service/internal/mocks"
)

func registeredRoutes(router *gin.Engine) []string {
	var out []string
	for _, r := range router.Routes() {
		out = append(out, r.Method+" "+r.Path)
	}
	sort.Strings(out)
	return out
}

func TestPricingRoutes_RegisterPublicRoutes(t *testing.T) {
	router := gin.New()
	routes := NewPricingRoutes(newQuoteHandler(), nil)
	routes.RegisterPublicRoutes(router.Group("/api"))

	assert.Equal(t, []string{
		"GET /api/pricing",
		"GET /api/pricing/defaults",
		"POST /api/quotes",
	}, registeredRoutes(router))
	assert.NotNil(t, routes.GetHandler())
}

func TestPricingRoutes_RegisterProtectedRoutes(t *testing.T) {
	tests := []struct {
		name     string
		handler  *PricingHandler
		expected []string
	}{
		{
			name:     "without pricing handler",
			handler:  nil,
			expected: nil,
		},
		{
			name:    "with pricing handler",
			handler: NewPricingHandler(new(mocks.MockPricingService), new(mocks.MockAuditService), ""),
			expected: []string{
				"GET /api/pricing/audit",
				"GET /api/pricing/history",
				"PUT /api/pricing",
				"PUT /api/pricing/system",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			cfg := DefaultRouterConfig()
			NewPricingRoutes(newQuoteHandler(), tt.handler).RegisterProtectedRoutes(router.Group("/api"), &cfg)
			assert.Equal(t, tt.expected, registeredRoutes(router))
		})
	}
}

func TestAuthRoutes_Groups(t *testing.T) {
	verifier := new(mocks.MockTokenVerifier)
	auth := NewAuthRoutes(verifier)
	cfg := RouterConfig{}

	router := gin.New()
	api := router.Group("/api")
	auth.GetProtectedGroup(api, &cfg).GET("/private", func(c *gin.Context) { c.Status(http.StatusOK) })
	auth.GetOptionalGroup(api).GET("/public", func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Len(t, router.Routes(), 2)
	assert.Equal(t, http.StatusUnauthorized, serve(router, http.MethodGet, "/api/private", "", nil).Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/public", "", nil).Code)
	verifier.AssertNotCalled(t, "Verify")
}
