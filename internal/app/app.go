// Package app provides application initialization and dependency injection.
package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/http"
	"github.com/guttosm/print-quote-service/internal/middleware"
)

// App is the wired service together with the resources it owns.
type App struct {
	Router   *gin.Engine
	Stores   *StoreComponents
	Services *ServiceComponents

	limiter *middleware.ShardedRateLimiter
}

// InitializeApp creates and wires all application dependencies in order:
// logger, stores, services, router. Call Close when done.
func InitializeApp(ctx context.Context, cfg config.Config) (*App, error) {
	// Initialize logger first (needed by other components)
	InitializeLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stores, err := InitializeStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	services, err := InitializeServices(ctx, cfg, stores)
	if err != nil {
		_ = stores.Close(ctx)
		return nil, err
	}

	if cfg.Pricing.SeedSystem {
		seed := services.Calculator.Defaults()
		if services.FileSource != nil {
			seed = services.FileSource.Current()
		}
		if _, err := seedSystemPricing(stores.Pricing, seed); err != nil {
			log.Warn().Err(err).Msg("Failed to seed system pricing")
		}
	}

	routerComponents := InitializeRouter(services, stores, cfg)

	return &App{
		Router:   http.NewRouter(routerComponents.Handler, routerComponents.HealthHandler, routerComponents.Config),
		Stores:   stores,
		Services: services,
		limiter:  routerComponents.RateLimiter,
	}, nil
}

// Close releases resources in reverse start order.
func (a *App) Close(ctx context.Context) error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.Services.Close()
	if err := a.Stores.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to close stores")
		return err
	}
	return nil
}
