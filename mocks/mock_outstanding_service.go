package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/analytics"
	"rollstock/internal/domain"
	"rollstock/internal/service"
)

// MockOutstandingService is a mock implementation of service.OutstandingService.
type MockOutstandingService struct {
	mock.Mock
}

func (m *MockOutstandingService) Create(ctx context.Context, in service.CreateOutstandingInput) (*domain.OpeningOutstanding, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingService) List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OpeningOutstanding), args.Int(1), args.Error(2)
}

func (m *MockOutstandingService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingService) UpdateAdjusted(ctx context.Context, id uuid.UUID, adjustedAmount float64) (*domain.OpeningOutstanding, error) {
	args := m.Called(ctx, id, adjustedAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingService) PendingInvoices(ctx context.Context, customerID uuid.UUID, amountRange analytics.AmountRange) ([]domain.PendingInvoice, domain.PendingSummary, error) {
	args := m.Called(ctx, customerID, amountRange)
	if args.Get(0) == nil {
		return nil, args.Get(1).(domain.PendingSummary), args.Error(2)
	}
	return args.Get(0).([]domain.PendingInvoice), args.Get(1).(domain.PendingSummary), args.Error(2)
}
