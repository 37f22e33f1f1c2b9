package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rollstock/internal/domain"
)

// InvoiceRepository is the live invoice store. All writes — creation,
// payment allocation, deletion during archiving — go through here.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	List(ctx context.Context, filter domain.InvoiceListFilter) ([]domain.Invoice, int, error)
	UpdatePayment(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListPendingByCustomer returns live invoices with money still owed:
	// unpaid or partial status, or a positive pending amount.
	ListPendingByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, error)
	ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Invoice, error)
	// SumBilledBefore totals grand_total for invoices dated before the
	// cutoff, excluding invoices carried by an opening-outstanding
	// record: those enter a ledger's opening balance through their
	// outstanding balance alone.
	SumBilledBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error)
}

// InvoiceArchiveRepository is the archived invoice store. It is
// read-only apart from Insert, which the archiving move itself uses.
type InvoiceArchiveRepository interface {
	Insert(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error)
	ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Invoice, error)
	// SumBilledBefore has the same opening-outstanding exclusion as the
	// live store's method.
	SumBilledBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error)
}
