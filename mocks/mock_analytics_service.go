package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/analytics"
	"rollstock/internal/service"
)

// MockAnalyticsService is a mock implementation of service.AnalyticsService.
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) WidthDistribution(ctx context.Context, opts service.WidthDistributionOptions) (*service.WidthDistributionReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.WidthDistributionReport), args.Error(1)
}

func (m *MockAnalyticsService) WidthDistributionMulti(ctx context.Context, opts service.SalesReportOptions, widths []string) ([]service.WidthBucketReport, error) {
	args := m.Called(ctx, opts, widths)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.WidthBucketReport), args.Error(1)
}

func (m *MockAnalyticsService) ProductSales(ctx context.Context, opts service.SalesReportOptions, groupBy string) (*service.SalesReport, error) {
	args := m.Called(ctx, opts, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SalesReport), args.Error(1)
}

func (m *MockAnalyticsService) CustomerAnalytics(ctx context.Context, opts service.CustomerAnalyticsOptions) (*service.SalesReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SalesReport), args.Error(1)
}

func (m *MockAnalyticsService) SalesTrends(ctx context.Context, months int, bucket analytics.TimeBucket, customerID *uuid.UUID) (*service.TrendReport, error) {
	args := m.Called(ctx, months, bucket, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.TrendReport), args.Error(1)
}
