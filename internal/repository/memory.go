package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// InMemoryPricingRepository keeps pricing versions in process memory. It is
// used when no database is configured and in tests.
type InMemoryPricingRepository struct {
	mu       sync.RWMutex
	versions map[string][]PricingConfigRecord
	now      func() time.Time
}

// NewInMemoryPricingRepository creates an empty store.
func NewInMemoryPricingRepository() *InMemoryPricingRepository {
	return &InMemoryPricingRepository{
		versions: make(map[string][]PricingConfigRecord),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (r *InMemoryPricingRepository) GetActive(ctx context.Context, ownerID string) (*PricingConfigRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.versions[ownerID]
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].Active {
			rec := versions[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *InMemoryPricingRepository) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*PricingConfigRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	versions := r.versions[ownerID]
	for i := range versions {
		if versions[i].Active {
			versions[i].Active = false
			versions[i].UpdatedAt = now
		}
	}

	rec := PricingConfigRecord{
		ID:            uuid.NewString(),
		OwnerID:       ownerID,
		Configuration: cfg,
		Active:        true,
		Version:       len(versions) + 1,
		CreatedAt:     now,
		UpdatedAt:     now,
		CreatedBy:     createdBy,
	}
	r.versions[ownerID] = append(versions, rec)
	return &rec, nil
}

func (r *InMemoryPricingRepository) List(ctx context.Context, ownerID string, limit int) ([]PricingConfigRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions := r.versions[ownerID]
	out := make([]PricingConfigRecord, 0, len(versions))
	for i := len(versions) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, versions[i])
	}
	return out, nil
}

// InMemoryAuditRepository keeps the most recent audit events in memory.
type InMemoryAuditRepository struct {
	mu       sync.RWMutex
	events   []model.AuditEvent
	capacity int
}

// NewInMemoryAuditRepository keeps at most capacity events; older ones are dropped.
func NewInMemoryAuditRepository(capacity int) *InMemoryAuditRepository {
	if capacity <= 0 {
		capacity = 1000
	}
	return &InMemoryAuditRepository{capacity: capacity}
}

func (r *InMemoryAuditRepository) Create(ctx context.Context, event *model.AuditEvent) error {
	return r.CreateMany(ctx, []*model.AuditEvent{event})
}

func (r *InMemoryAuditRepository) CreateMany(ctx context.Context, events []*model.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range events {
		prepareAuditEvent(e)
		r.events = append(r.events, *e)
	}
	if over := len(r.events) - r.capacity; over > 0 {
		r.events = append([]model.AuditEvent(nil), r.events[over:]...)
	}
	return nil
}

func (r *InMemoryAuditRepository) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := r.match(q)
	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			return []model.AuditEvent{}, nil
		}
		matched = matched[q.Skip:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (r *InMemoryAuditRepository) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.match(q))), nil
}

// match returns matching events, newest first.
func (r *InMemoryAuditRepository) match(q model.AuditQuery) []model.AuditEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []model.AuditEvent{}
	for _, e := range r.events {
		switch {
		case q.ShopID != "" && e.ShopID != q.ShopID,
			q.Action != "" && e.Action != q.Action,
			q.RequestID != "" && e.RequestID != q.RequestID,
			q.Since != nil && e.Timestamp.Before(*q.Since),
			q.Until != nil && e.Timestamp.After(*q.Until):
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
