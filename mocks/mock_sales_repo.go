package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rollstock/internal/analytics"
)

// MockSalesRepo is a mock implementation of port.SalesRepository.
type MockSalesRepo struct {
	mock.Mock
}

func (m *MockSalesRepo) LineFacts(ctx context.Context, filter analytics.FactFilter) ([]analytics.LineFact, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]analytics.LineFact), args.Error(1)
}
