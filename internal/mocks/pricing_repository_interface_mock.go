// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

type MockPricingRepositoryInterface struct {
	mock.Mock
}

func (m *MockPricingRepositoryInterface) GetActive(ctx context.Context, ownerID string) (*repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigRecord), args.Error(1)
}

func (m *MockPricingRepositoryInterface) Create(ctx context.Context, ownerID string, cfg model.PricingConfiguration, createdBy string) (*repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID, cfg, createdBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PricingConfigRecord), args.Error(1)
}

func (m *MockPricingRepositoryInterface) List(ctx context.Context, ownerID string, limit int) ([]repository.PricingConfigRecord, error) {
	args := m.Called(ctx, ownerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.PricingConfigRecord), args.Error(1)
}
