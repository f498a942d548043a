package middleware

import (
	"context"
	"sync"

	"github.com/guttosm/print-quote-service/internal/domain/model"
)

// fakeAuditService counts stored events. block, when set, stalls every write
// until it is closed.
type fakeAuditService struct {
	mu      sync.Mutex
	events  []*model.AuditEvent
	batches int
	err     error
	block   chan struct{}
}

func (f *fakeAuditService) Record(ctx context.Context, event *model.AuditEvent) error {
	return f.RecordMany(ctx, []*model.AuditEvent{event})
}

func (f *fakeAuditService) RecordMany(_ context.Context, events []*model.AuditEvent) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches++
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, events...)
	return nil
}

func (f *fakeAuditService) Query(context.Context, model.AuditQuery) ([]model.AuditEvent, error) {
	return nil, nil
}

func (f *fakeAuditService) Count(context.Context, model.AuditQuery) (int64, error) {
	return 0, nil
}

func (f *fakeAuditService) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// captureRecorder keeps every event passed to Log.
type captureRecorder struct {
	mu     sync.Mutex
	events []*model.AuditEvent
}

func (r *captureRecorder) Log(event *model.AuditEvent) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return true
}

func (r *captureRecorder) last() *model.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func (r *captureRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
