package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/domain"
)

// MockOutstandingRepo is a mock implementation of port.OutstandingRepository.
type MockOutstandingRepo struct {
	mock.Mock
}

func (m *MockOutstandingRepo) Create(ctx context.Context, o *domain.OpeningOutstanding) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOutstandingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*domain.OpeningOutstanding, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingRepo) List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OpeningOutstanding), args.Int(1), args.Error(2)
}

func (m *MockOutstandingRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingRepo) ListPendingByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OpeningOutstanding), args.Error(1)
}

func (m *MockOutstandingRepo) UpdateAdjusted(ctx context.Context, o *domain.OpeningOutstanding) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOutstandingRepo) SumBalanceByCustomer(ctx context.Context, customerID uuid.UUID) (float64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(float64), args.Error(1)
}
