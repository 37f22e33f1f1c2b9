package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rollstock/internal/analytics"
	"rollstock/internal/domain"
	"rollstock/internal/logger"
	"rollstock/internal/port"
)

// CreateOutstandingInput creates an opening-outstanding record against an
// invoice resolved by ID from the live store first, then the archive.
type CreateOutstandingInput struct {
	InvoiceID            uuid.UUID `json:"invoice_id"`
	OpeningPendingAmount float64   `json:"opening_pending_amount"`
	AdjustedAmount       float64   `json:"adjusted_amount"`
}

// OutstandingService manages opening-outstanding records and reconciles
// them with live pending invoices into one per-customer view.
type OutstandingService interface {
	Create(ctx context.Context, in CreateOutstandingInput) (*domain.OpeningOutstanding, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error)
	List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error)
	UpdateAdjusted(ctx context.Context, id uuid.UUID, adjustedAmount float64) (*domain.OpeningOutstanding, error)

	// PendingInvoices merges a customer's live pending invoices with
	// their opening-outstanding balances, both filtered by the amount
	// range before merging.
	PendingInvoices(ctx context.Context, customerID uuid.UUID, amountRange analytics.AmountRange) ([]domain.PendingInvoice, domain.PendingSummary, error)
}

type outstandingService struct {
	outstandingRepo port.OutstandingRepository
	invoiceSvc      InvoiceService
	invoiceRepo     port.InvoiceRepository
	customerRepo    port.CustomerRepository
	log             zerolog.Logger
}

// NewOutstandingService creates a new OutstandingService implementation.
func NewOutstandingService(
	outstandingRepo port.OutstandingRepository,
	invoiceSvc InvoiceService,
	invoiceRepo port.InvoiceRepository,
	customerRepo port.CustomerRepository,
) OutstandingService {
	return &outstandingService{
		outstandingRepo: outstandingRepo,
		invoiceSvc:      invoiceSvc,
		invoiceRepo:     invoiceRepo,
		customerRepo:    customerRepo,
		log:             logger.WithComponent("outstanding_service"),
	}
}

func (s *outstandingService) Create(ctx context.Context, in CreateOutstandingInput) (*domain.OpeningOutstanding, error) {
	if in.OpeningPendingAmount < 0 {
		return nil, fmt.Errorf("%w: opening_pending_amount cannot be negative", domain.ErrValidation)
	}
	if in.AdjustedAmount < 0 {
		return nil, fmt.Errorf("%w: adjusted_amount cannot be negative", domain.ErrInvalidAdjustedAmount)
	}

	inv, archived, err := s.invoiceSvc.FindAnywhere(ctx, in.InvoiceID)
	if err != nil {
		return nil, err
	}

	o := &domain.OpeningOutstanding{
		ID:                   uuid.New(),
		InvoiceID:            inv.ID,
		InvoiceNumber:        inv.InvoiceNumber,
		InvoiceDate:          inv.InvoiceDate,
		CustomerID:           inv.CustomerID,
		OpeningPendingAmount: in.OpeningPendingAmount,
		AdjustedAmount:       in.AdjustedAmount,
	}
	o.RecomputeBalance()

	if err := s.outstandingRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("outstanding_id", o.ID.String()).
		Str("invoice_number", o.InvoiceNumber).
		Bool("invoice_archived", archived).
		Float64("balance_pending", o.BalancePending).
		Msg("opening outstanding created")
	return o, nil
}

func (s *outstandingService) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error) {
	return s.outstandingRepo.GetByID(ctx, id)
}

func (s *outstandingService) List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error) {
	return s.outstandingRepo.List(ctx, offset, limit)
}

func (s *outstandingService) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, err
	}
	return s.outstandingRepo.ListByCustomer(ctx, customerID)
}

func (s *outstandingService) UpdateAdjusted(ctx context.Context, id uuid.UUID, adjustedAmount float64) (*domain.OpeningOutstanding, error) {
	if adjustedAmount < 0 {
		return nil, fmt.Errorf("%w: adjusted_amount cannot be negative", domain.ErrInvalidAdjustedAmount)
	}

	o, err := s.outstandingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.AdjustedAmount = adjustedAmount
	o.RecomputeBalance()

	if err := s.outstandingRepo.UpdateAdjusted(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *outstandingService) PendingInvoices(ctx context.Context, customerID uuid.UUID, amountRange analytics.AmountRange) ([]domain.PendingInvoice, domain.PendingSummary, error) {
	if _, err := s.customerRepo.GetByID(ctx, customerID); err != nil {
		return nil, domain.PendingSummary{}, err
	}

	invoices, err := s.invoiceRepo.ListPendingByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.PendingSummary{}, err
	}
	outstandings, err := s.outstandingRepo.ListPendingByCustomer(ctx, customerID)
	if err != nil {
		return nil, domain.PendingSummary{}, err
	}

	current := make([]domain.PendingInvoice, 0, len(invoices))
	for _, inv := range invoices {
		current = append(current, analytics.NormalizeInvoice(inv))
	}
	opening := make([]domain.PendingInvoice, 0, len(outstandings))
	for _, o := range outstandings {
		opening = append(opening, analytics.NormalizeOutstanding(o))
	}

	merged, summary := analytics.MergePending(current, opening, amountRange)
	return merged, summary, nil
}
