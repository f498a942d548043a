package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/logger"
	"github.com/guttosm/print-quote-service/internal/metrics"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service/cache"
)

// ErrRepositoryNotConfigured is returned when the repository is not configured.
var ErrRepositoryNotConfigured = errors.New("repository not configured")

// ResolvedPricing is the configuration in effect for an owner before the
// calculator's defaults are applied. It may still be partial.
type ResolvedPricing struct {
	OwnerID       string
	Configuration model.PricingConfiguration
	// Version is the owner's active version, 0 when the owner has none.
	Version int
	// SystemVersion is the active shared version, 0 when there is none.
	SystemVersion int
	// Degraded is set when a store read failed and a layer was skipped.
	Degraded bool
}

// PricingService provides pricing configuration operations.
type PricingService interface {
	// Resolve layers the owner's configuration over the shared one and the
	// file source. Store failures are logged, never returned.
	Resolve(ctx context.Context, ownerID string) (ResolvedPricing, error)
	GetActive(ctx context.Context, ownerID string) (*repository.PricingConfigRecord, error)
	// Update stores cfg as the owner's new active version.
	Update(ctx context.Context, ownerID string, cfg model.PricingConfiguration, updatedBy string) (*repository.PricingConfigRecord, error)
	List(ctx context.Context, ownerID string, limit int) ([]repository.PricingConfigRecord, error)
}

// PricingOption configures a PricingServiceImpl.
type PricingOption func(*PricingServiceImpl)

// WithPricingSource adds a configuration layer below the stored ones.
func WithPricingSource(src repository.PricingSource) PricingOption {
	return func(s *PricingServiceImpl) {
		s.source = src
	}
}

// WithPricingCache caches resolved configurations per owner.
func WithPricingCache(c cache.Cache[ResolvedPricing]) PricingOption {
	return func(s *PricingServiceImpl) {
		s.cache = c
	}
}

// WithPricingAudit records every successful update.
func WithPricingAudit(rec AuditRecorder) PricingOption {
	return func(s *PricingServiceImpl) {
		s.audit = rec
	}
}

// PricingServiceImpl implements PricingService.
type PricingServiceImpl struct {
	repo   repository.PricingRepositoryInterface
	source repository.PricingSource
	cache  cache.Cache[ResolvedPricing]
	audit  AuditRecorder

	// gen counts invalidations. A Resolve that started before one must not
	// cache what it read.
	mu  sync.Mutex
	gen uint64
}

// NewPricingService creates a pricing service. repo may be nil, in which
// case only the file source and defaults are used and writes fail.
func NewPricingService(repo repository.PricingRepositoryInterface, opts ...PricingOption) *PricingServiceImpl {
	s := &PricingServiceImpl{repo: repo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func cacheKey(ownerID string) string {
	return "owner:" + ownerID
}

func (s *PricingServiceImpl) Resolve(ctx context.Context, ownerID string) (ResolvedPricing, error) {
	if s.cache != nil {
		if rp, ok := s.cache.Get(cacheKey(ownerID)); ok {
			return rp, nil
		}
	}

	gen := s.generation()
	rp := ResolvedPricing{OwnerID: ownerID}
	if s.source != nil {
		rp.Configuration = s.source.Current()
	}

	if s.repo != nil {
		system, err := s.repo.GetActive(ctx, repository.SystemOwnerID)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ResolvedPricing{}, ctxErr
			}
			logStoreFailure(ctx, err, repository.SystemOwnerID)
			rp.Degraded = true
		} else if system != nil {
			rp.Configuration = rp.Configuration.Overlay(system.Configuration)
			rp.SystemVersion = system.Version
		}

		if ownerID != repository.SystemOwnerID {
			owner, err := s.repo.GetActive(ctx, ownerID)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ResolvedPricing{}, ctxErr
				}
				logStoreFailure(ctx, err, ownerID)
				rp.Degraded = true
			} else if owner != nil {
				rp.Configuration = rp.Configuration.Overlay(owner.Configuration)
				rp.Version = owner.Version
			}
		} else {
			rp.Version = rp.SystemVersion
		}
	}

	// A degraded result would pin the fallback for the cache TTL.
	if !rp.Degraded {
		s.store(ownerID, rp, gen)
	}
	return rp, nil
}

func (s *PricingServiceImpl) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// store caches rp unless an invalidation happened since gen was read.
func (s *PricingServiceImpl) store(ownerID string, rp ResolvedPricing, gen uint64) {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.cache.Set(cacheKey(ownerID), rp)
}

func logStoreFailure(ctx context.Context, err error, ownerID string) {
	event := logger.FromContext(ctx).Warn()
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		event = logger.FromContext(ctx).Debug()
	}
	event.Err(err).Str("owner_id", ownerID).Msg("Stored pricing unavailable, using lower layers")
}

func (s *PricingServiceImpl) GetActive(ctx context.Context, ownerID string) (*repository.PricingConfigRecord, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.GetActive(ctx, ownerID)
}

func (s *PricingServiceImpl) Update(ctx context.Context, ownerID string, cfg model.PricingConfiguration, updatedBy string) (*repository.PricingConfigRecord, error) {
	scope := "shop"
	if ownerID == repository.SystemOwnerID {
		scope = "system"
	}
	if s.repo == nil {
		metrics.RecordPricingUpdate(scope, "error")
		return nil, ErrRepositoryNotConfigured
	}
	if cfg.Len() == 0 {
		metrics.RecordPricingUpdate(scope, "invalid")
		return nil, fmt.Errorf("%w: pricing configuration has no tiers", model.ErrInvalidArgument)
	}

	rec, err := s.repo.Create(ctx, ownerID, cfg, updatedBy)
	if err != nil {
		metrics.RecordPricingUpdate(scope, "error")
		return nil, err
	}
	metrics.RecordPricingUpdate(scope, "success")

	if scope == "system" {
		s.InvalidateAll()
	} else {
		s.Invalidate(ownerID)
	}

	logger.FromContext(ctx).Info().
		Str("owner_id", ownerID).
		Str("updated_by", updatedBy).
		Int("version", rec.Version).
		Int("cells", cfg.Len()).
		Msg("Pricing updated")

	if s.audit != nil {
		event := &model.AuditEvent{
			Level:   "info",
			Action:  model.ActionPricingUpdate,
			Message: "pricing configuration updated",
			ActorID: updatedBy,
			ShopID:  ownerID,
		}
		event.RequestID = logger.RequestIDFromContext(ctx)
		event.WithField("version", rec.Version).WithField("tiers", tierFields(cfg))
		s.audit.Log(event)
	}
	return rec, nil
}

func (s *PricingServiceImpl) List(ctx context.Context, ownerID string, limit int) ([]repository.PricingConfigRecord, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	return s.repo.List(ctx, ownerID, limit)
}

// Invalidate drops the cached configuration of ownerID.
func (s *PricingServiceImpl) Invalidate(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cache != nil {
		s.cache.Invalidate(cacheKey(ownerID))
	}
}

// InvalidateAll drops every cached configuration. Used when a layer shared
// by all owners changes.
func (s *PricingServiceImpl) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cache != nil {
		s.cache.Clear()
	}
}

// tierFields flattens cfg into plain values that any audit store can encode.
func tierFields(cfg model.PricingConfiguration) map[string]interface{} {
	out := make(map[string]interface{}, cfg.Len())
	for _, cell := range cfg.Cells() {
		out[cell.Key().String()] = map[string]interface{}{
			"base_price":  cell.BasePrice.String(),
			"base_limit":  cell.BaseLimit,
			"extra_price": cell.ExtraPrice.String(),
		}
	}
	return out
}
