package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/domain"
)

// MockInvoiceArchiveRepo is a mock implementation of port.InvoiceArchiveRepository.
type MockInvoiceArchiveRepo struct {
	mock.Mock
}

func (m *MockInvoiceArchiveRepo) Insert(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceArchiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceArchiveRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceArchiveRepo) ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Invoice, error) {
	args := m.Called(ctx, customerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockInvoiceArchiveRepo) SumBilledBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error) {
	args := m.Called(ctx, customerID, before)
	return args.Get(0).(float64), args.Error(1)
}
