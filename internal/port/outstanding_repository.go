package port

import (
	"context"

	"github.com/google/uuid"

	"rollstock/internal/domain"
)

// OutstandingRepository stores pre-cutover opening-outstanding records.
// At most one exists per invoice; only the adjusted amount (and derived
// balance) is ever mutated.
type OutstandingRepository interface {
	Create(ctx context.Context, o *domain.OpeningOutstanding) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*domain.OpeningOutstanding, error)
	List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error)
	// ListPendingByCustomer returns records with balance_pending > 0.
	ListPendingByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error)
	UpdateAdjusted(ctx context.Context, o *domain.OpeningOutstanding) error
	SumBalanceByCustomer(ctx context.Context, customerID uuid.UUID) (float64, error)
}
