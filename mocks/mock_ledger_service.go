package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/domain"
)

// MockLedgerService is a mock implementation of service.LedgerService.
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) CustomerLedger(ctx context.Context, customerID uuid.UUID, yearToken string) (*domain.CustomerLedger, error) {
	args := m.Called(ctx, customerID, yearToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerLedger), args.Error(1)
}

func (m *MockLedgerService) ExportXLSX(ctx context.Context, customerID uuid.UUID, yearToken string) ([]byte, string, error) {
	args := m.Called(ctx, customerID, yearToken)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}
