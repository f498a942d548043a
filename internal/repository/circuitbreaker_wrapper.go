package repository

import (
	"context"
	"errors"

	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// PricingRepositoryWithCircuitBreaker guards a pricing store. While the
// circuit is open every call fails with circuitbreaker.ErrCircuitOpen
// without reaching the store.
type PricingRepositoryWithCircuitBreaker struct {
	repo           PricingRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewPricingRepositoryWithCircuitBreaker wraps repo with cb.
func NewPricingRepositoryWithCircuitBreaker(repo PricingRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *PricingRepositoryWithCircuitBreaker {
	return &PricingRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *PricingRepositoryWithCircuitBreaker) GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func(ctx context.Context) (*PricingConfigRecord, error) {
		return r.repo.GetActive(ctx, ownerID)
	})
}

func (r *PricingRepositoryWithCircuitBreaker) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func(ctx context.Context) (*PricingConfigRecord, error) {
		return r.repo.Create(ctx, ownerID, cfg, createdBy)
	})
}

func (r *PricingRepositoryWithCircuitBreaker) List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func(ctx context.Context) ([]PricingConfigRecord, error) {
		return r.repo.List(ctx, ownerID, limit)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *PricingRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// AuditRepositoryWithCircuitBreaker guards the audit store. Writes are
// dropped silently while the circuit is open; the audit trail is best effort.
type AuditRepositoryWithCircuitBreaker struct {
	repo           AuditRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewAuditRepositoryWithCircuitBreaker wraps repo with cb.
func NewAuditRepositoryWithCircuitBreaker(repo AuditRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *AuditRepositoryWithCircuitBreaker {
	return &AuditRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

func (r *AuditRepositoryWithCircuitBreaker) Create(ctx context.Context, event *model.AuditEvent) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, event)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *AuditRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, events []*model.AuditEvent) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, events)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

func (r *AuditRepositoryWithCircuitBreaker) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func(ctx context.Context) ([]model.AuditEvent, error) {
		return r.repo.Query(ctx, q)
	})
}

func (r *AuditRepositoryWithCircuitBreaker) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	return circuitbreaker.Call(ctx, r.circuitBreaker, func(ctx context.Context) (int64, error) {
		return r.repo.Count(ctx, q)
	})
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *AuditRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
