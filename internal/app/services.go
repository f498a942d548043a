// Package app provides service initialization.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/middleware"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
	"github.com/guttosm/print-quote-service/internal/service/cache"
)

// ServiceComponents holds service-related components.
type ServiceComponents struct {
	Calculator *service.PrintCostCalculatorService
	Pricing    *service.PricingServiceImpl
	Quotes     *service.QuoteServiceImpl
	Audit      *service.AuditServiceImpl
	// Recorder writes audit events in the background.
	Recorder *middleware.AsyncLogger
	// FileSource is set when a YAML rate card is configured.
	FileSource *repository.FilePricingSource

	cache *cache.Sharded[service.ResolvedPricing]
}

// InitializeServices wires the quote services over stores. When a pricing
// file is configured and watching is enabled, reloads clear the resolved
// pricing cache.
func InitializeServices(ctx context.Context, cfg config.Config, stores *StoreComponents) (*ServiceComponents, error) {
	components := &ServiceComponents{
		Calculator: service.NewPrintCostCalculator(),
		Audit:      service.NewAuditService(stores.Audit),
	}
	components.Recorder = middleware.NewAsyncLogger(components.Audit, middleware.DefaultAsyncLoggerConfig())

	opts := []service.PricingOption{service.WithPricingAudit(components.Recorder)}

	if cfg.Pricing.CacheSize > 0 {
		components.cache = cache.NewSharded[service.ResolvedPricing]("pricing", cfg.Pricing.CacheSize, cfg.Pricing.CacheTTL, 0)
		opts = append(opts, service.WithPricingCache(components.cache))
	}

	if cfg.Pricing.File != "" {
		src, err := repository.NewFilePricingSource(cfg.Pricing.File,
			repository.WithReloadHook(func(model.PricingConfiguration) {
				if components.Pricing != nil {
					components.Pricing.InvalidateAll()
				}
			}))
		if err != nil {
			components.Close()
			return nil, fmt.Errorf("load pricing file: %w", err)
		}
		components.FileSource = src
		opts = append(opts, service.WithPricingSource(src))
		log.Info().Str("path", src.Path()).Int("cells", src.Current().Len()).Msg("Loaded pricing file")
	}

	components.Pricing = service.NewPricingService(stores.Pricing, opts...)
	components.Quotes = service.NewQuoteService(
		service.NewPageSelectionResolver(),
		components.Calculator,
		components.Pricing,
		service.WithMaxTotalPages(cfg.Pricing.MaxTotalPages),
		service.WithQuoteAudit(components.Recorder),
	)

	if components.FileSource != nil && cfg.Pricing.Watch {
		if err := components.FileSource.Start(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to watch pricing file - reloads disabled")
		}
	}

	return components, nil
}

// Close stops the file watcher, flushes pending audit events and stops the
// cache janitors.
func (s *ServiceComponents) Close() {
	if s.FileSource != nil {
		s.FileSource.Stop()
	}
	if s.Recorder != nil {
		s.Recorder.Stop()
	}
	if s.cache != nil {
		s.cache.Stop()
	}
}
