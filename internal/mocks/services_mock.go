// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
	"github.com/guttosm/print-quote-service/internal/service"
)

type MockPricingService struct {
	mock.Mock
}

func (m *MockPricingService) Resolve(ctx context.Context, ownerID string) (service.ResolvedPricing, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(service.ResolvedPricing), args.Error(1)
}

func (m *MockPricingService) GetActive(ctx context.Context, ownerID string) (*repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigRecord), args.Error(1)
}

func (m *MockPricingService) Update(ctx context.Context, ownerID string, cfg model.PricingConfiguration, updatedBy string) (*repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID, cfg, updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigRecord), args.Error(1)
}

func (m *MockPricingService) List(ctx context.Context, ownerID string, limit int) ([]repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PricingConfigRecord), args.Error(1)
}

type MockQuoteService struct {
	mock.Mock
}

func (m *MockQuoteService) Quote(ctx context.Context, req service.QuoteRequest) (*model.Quote, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Quote), args.Error(1)
}

func (m *MockQuoteService) EffectivePricing(ctx context.Context, shopID string) (*service.EffectivePricing, error) {
	args := m.Called(ctx, shopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.EffectivePricing), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, event *model.AuditEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockAuditService) RecordMany(ctx context.Context, events []*model.AuditEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockAuditService) Query(ctx context.Context, q model.AuditQuery) ([]model.AuditEvent, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AuditEvent), args.Error(1)
}

func (m *MockAuditService) Count(ctx context.Context, q model.AuditQuery) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditRecorder captures logged events.
type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Log(event *model.AuditEvent) bool {
	args := m.Called(event)
	return args.Bool(0)
}

type MockTokenVerifier struct {
	mock.Mock
}

func (m *MockTokenVerifier) Verify(tokenString string) (*dto.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Claims), args.Error(1)
}
