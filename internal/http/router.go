package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/print-quote-service/internal/metrics"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// infrastructurePaths are served without request logging or compression.
var infrastructurePaths = []string{"/healthz", "/readyz", "/metrics"}

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit  int
	RateWindow time.Duration
	// RateLimiter, when set, is used instead of one built from RateLimit
	// and RateWindow. The caller owns it and must Stop it.
	RateLimiter *middleware.ShardedRateLimiter
	// RequestTimeout bounds the context of every API request. Zero disables it.
	RequestTimeout time.Duration
	// APIKeyHashes are bcrypt hashes of accepted API keys. They guard the
	// API only when no TokenVerifier is set.
	APIKeyHashes []string
	// TokenVerifier enables bearer authentication and the rate card
	// management routes.
	TokenVerifier     service.TokenVerifier
	OwnerRole         string
	EnableIdempotency bool
	// Idempotency overrides the default response store when EnableIdempotency is set.
	Idempotency    *middleware.IdempotencyConfig
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	Recorder       service.AuditRecorder
	PricingHandler *PricingHandler

	limiter *middleware.ShardedRateLimiter
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: middleware.DefaultTimeoutConfig().Timeout,
	}
}

// rateLimiter returns the limiter shared by the global and per-caller
// limits, or nil when rate limiting is off.
func (cfg *RouterConfig) rateLimiter() *middleware.ShardedRateLimiter {
	if cfg.RateLimiter != nil {
		return cfg.RateLimiter
	}
	if cfg.limiter == nil && cfg.RateLimit > 0 {
		cfg.limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	return cfg.limiter
}

// NewRouter creates and configures the Gin router for the quote service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	if handler == nil {
		return router
	}
	pricingRoutes := NewPricingRoutes(handler, cfg.PricingHandler)

	if cfg.TokenVerifier != nil {
		registerAuthenticatedRoutes(api, pricingRoutes, &cfg)
	} else {
		registerPublicRoutes(api, pricingRoutes, &cfg)
	}

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Authorization", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(infrastructurePaths...),
		middleware.RequestLogger(cfg.Recorder, infrastructurePaths...),
		middleware.ErrorHandler(),
	)

	if limiter := cfg.rateLimiter(); limiter != nil {
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.RequestTimeout > 0 {
		api.Use(middleware.TimeoutWithDuration(cfg.RequestTimeout))
	}

	if cfg.TokenVerifier == nil && len(cfg.APIKeyHashes) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeyHashes))
	}
}

// idempotencyMiddleware returns the idempotency middleware, or nil when it
// is disabled. It runs after authentication so keys are scoped per caller.
func idempotencyMiddleware(cfg *RouterConfig) gin.HandlerFunc {
	if !cfg.EnableIdempotency {
		return nil
	}
	idempotencyCfg := middleware.DefaultIdempotencyConfig()
	if cfg.Idempotency != nil {
		idempotencyCfg = *cfg.Idempotency
	}
	return middleware.Idempotency(idempotencyCfg)
}

// registerPublicRoutes registers routes when bearer authentication is off.
func registerPublicRoutes(api *gin.RouterGroup, routes *PricingRoutes, cfg *RouterConfig) {
	public := api.Group("")
	if idem := idempotencyMiddleware(cfg); idem != nil {
		public.Use(idem)
	}
	routes.RegisterPublicRoutes(public)
}

// registerAuthenticatedRoutes registers routes when bearer authentication
// is enabled. Quotes and rate card reads stay open to anonymous callers.
func registerAuthenticatedRoutes(api *gin.RouterGroup, routes *PricingRoutes, cfg *RouterConfig) {
	authRoutes := NewAuthRoutes(cfg.TokenVerifier)
	optional := authRoutes.GetOptionalGroup(api)
	protected := authRoutes.GetProtectedGroup(api, cfg)

	if idem := idempotencyMiddleware(cfg); idem != nil {
		optional.Use(idem)
		protected.Use(idem)
	}

	routes.RegisterPublicRoutes(optional)
	routes.RegisterProtectedRoutes(protected, cfg)
}
