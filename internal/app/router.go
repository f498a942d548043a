// Package app provides router configuration.
package app

import (
	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/http"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/service"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
	// RateLimiter is owned by the app and stopped on shutdown.
	RateLimiter *middleware.ShardedRateLimiter
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, stores *StoreComponents, cfg config.Config) *RouterComponents {
	handler := http.NewHandler(services.Quotes,
		http.WithDefaultPricing(services.Calculator.Defaults()),
		http.WithCurrency(cfg.Pricing.Currency),
		http.WithOwnerRole(cfg.Auth.OwnerRole),
	)

	healthHandler := http.NewHealthHandler()
	if stores != nil {
		for name, cb := range stores.CircuitBreakers {
			healthHandler.RegisterCircuitBreaker(name, cb)
		}
		for name, check := range stores.Checkers {
			healthHandler.RegisterChecker(name, http.CheckerFunc(check))
		}
	}

	var verifier service.TokenVerifier
	if cfg.Auth.JWTSecretKey != "" {
		verifier = service.NewTokenVerifier(service.TokenConfig{
			SecretKey: cfg.Auth.JWTSecretKey,
			Issuer:    cfg.Auth.JWTIssuer,
			Leeway:    cfg.Auth.JWTLeeway,
		})
	}

	var limiter *middleware.ShardedRateLimiter
	if cfg.Server.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	routerCfg := http.RouterConfig{
		RateLimit:         cfg.Server.RateLimit,
		RateWindow:        cfg.Server.RateWindow,
		RateLimiter:       limiter,
		RequestTimeout:    cfg.Server.RequestTimeout,
		APIKeyHashes:      cfg.Auth.APIKeyHashes,
		TokenVerifier:     verifier,
		OwnerRole:         cfg.Auth.OwnerRole,
		EnableIdempotency: cfg.Server.EnableIdempotency,
		CORSOrigins:       cfg.Server.CORSOrigins,
		SwaggerUser:       cfg.Server.SwaggerUser,
		SwaggerPass:       cfg.Server.SwaggerPass,
		Recorder:          services.Recorder,
		PricingHandler:    http.NewPricingHandler(services.Pricing, services.Audit, cfg.Pricing.Currency),
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
		RateLimiter:   limiter,
	}
}
