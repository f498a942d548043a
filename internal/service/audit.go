package service

import (
	"context"
	"time"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

const (
	defaultAuditQueryLimit = 50
	maxAuditQueryLimit     = 500
)

// AuditService defines the interface for audit trail operations.
// This interface can be mocked for testing using mockery.
type AuditService interface {
	// Record stores a single audit event.
	Record(ctx context.Context, event *model.AuditEvent) error

	// RecordMany stores multiple audit events in bulk.
	RecordMany(ctx context.Context, events []*model.AuditEvent) error

	// Query retrieves audit events matching q, newest first.
	Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error)

	// Count returns the number of audit events matching q.
	Count(ctx context.Context, q model.AuditQuery) (int64, error)
}

// AuditRecorder accepts audit events for asynchronous storage. Log returns
// false when the event was dropped.
type AuditRecorder interface {
	Log(event *model.AuditEvent) bool
}

// AuditServiceImpl implements the AuditService interface.
type AuditServiceImpl struct {
	repo repository.AuditRepositoryInterface
	now  func() time.Time
}

// NewAuditService creates a new audit service.
func NewAuditService(repo repository.AuditRepositoryInterface) *AuditServiceImpl {
	return &AuditServiceImpl{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuditServiceImpl) Record(ctx context.Context, event *model.AuditEvent) error {
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	s.stamp(event)
	return s.repo.Create(ctx, event)
}

func (s *AuditServiceImpl) RecordMany(ctx context.Context, events []*model.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}
	if s.repo == nil {
		return ErrRepositoryNotConfigured
	}
	for _, e := range events {
		s.stamp(e)
	}
	return s.repo.CreateMany(ctx, events)
}

// Query applies a default page size of 50 and caps it at 500.
func (s *AuditServiceImpl) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	switch {
	case q.Limit <= 0:
		q.Limit = defaultAuditQueryLimit
	case q.Limit > maxAuditQueryLimit:
		q.Limit = maxAuditQueryLimit
	}
	if q.Skip < 0 {
		q.Skip = 0
	}
	return s.repo.Query(ctx, q)
}

func (s *AuditServiceImpl) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	return s.repo.Count(ctx, q)
}

func (s *AuditServiceImpl) stamp(e *model.AuditEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	if e.Level == "" {
		e.Level = "info"
	}
}
