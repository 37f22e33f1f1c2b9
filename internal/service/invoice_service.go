package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rollstock/internal/domain"
	"rollstock/internal/logger"
	"rollstock/internal/port"
)

// PaymentInput captures one allocation of money against a live invoice.
type PaymentInput struct {
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
	PaidAt    time.Time `json:"paid_at"`
}

// InvoiceService manages the live invoice store, payment allocation, and
// the one-way move into the archived store.
type InvoiceService interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	// FindAnywhere resolves an invoice from the live store first, then
	// falls back to the archived store. archived reports which store hit.
	FindAnywhere(ctx context.Context, id uuid.UUID) (inv *domain.Invoice, archived bool, err error)
	List(ctx context.Context, filter domain.InvoiceListFilter) ([]domain.Invoice, int, error)
	AllocatePayment(ctx context.Context, invoiceID uuid.UUID, in PaymentInput) (*domain.Invoice, error)
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error)
	Archive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	archiveRepo  port.InvoiceArchiveRepository
	paymentRepo  port.PaymentRepository
	customerRepo port.CustomerRepository
	log          zerolog.Logger
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	archiveRepo port.InvoiceArchiveRepository,
	paymentRepo port.PaymentRepository,
	customerRepo port.CustomerRepository,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		archiveRepo:  archiveRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		log:          logger.WithComponent("invoice_service"),
	}
}

func (s *invoiceService) Create(ctx context.Context, inv *domain.Invoice) error {
	inv.InvoiceNumber = strings.TrimSpace(inv.InvoiceNumber)
	if inv.InvoiceNumber == "" {
		return fmt.Errorf("%w: invoice_number is required", domain.ErrValidation)
	}
	if inv.CustomerID == uuid.Nil {
		return fmt.Errorf("%w: customer_id is required", domain.ErrValidation)
	}
	if len(inv.LineItems) == 0 {
		return fmt.Errorf("%w: at least one line item is required", domain.ErrValidation)
	}
	if _, err := s.customerRepo.GetByID(ctx, inv.CustomerID); err != nil {
		return err
	}

	inv.ID = uuid.New()
	if inv.InvoiceDate.IsZero() {
		inv.InvoiceDate = time.Now().UTC()
	}
	inv.ComputeGrandTotal()
	if inv.PaidAmount < 0 {
		inv.PaidAmount = 0
	}
	inv.PendingAmount = inv.GrandTotal - inv.PaidAmount
	inv.PaymentStatus = domain.PaymentStatusFor(inv.GrandTotal, inv.PaidAmount)

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return err
	}

	s.log.Info().
		Str("invoice_id", inv.ID.String()).
		Str("invoice_number", inv.InvoiceNumber).
		Float64("grand_total", inv.GrandTotal).
		Msg("invoice created")
	return nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.invoiceRepo.GetByID(ctx, id)
}

func (s *invoiceService) FindAnywhere(ctx context.Context, id uuid.UUID) (*domain.Invoice, bool, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err == nil {
		return inv, false, nil
	}
	if !errors.Is(err, domain.ErrInvoiceNotFound) {
		return nil, false, err
	}

	inv, err = s.archiveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return inv, true, nil
}

func (s *invoiceService) List(ctx context.Context, filter domain.InvoiceListFilter) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.List(ctx, filter)
}

// AllocatePayment records a payment against a live invoice and recomputes
// its paid amount, pending amount, and payment status. Archived invoices
// are read-only and reject allocations.
func (s *invoiceService) AllocatePayment(ctx context.Context, invoiceID uuid.UUID, in PaymentInput) (*domain.Invoice, error) {
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidPaymentAmount)
	}

	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			if _, archErr := s.archiveRepo.GetByID(ctx, invoiceID); archErr == nil {
				return nil, domain.ErrArchivedInvoiceReadOnly
			}
		}
		return nil, err
	}

	inv.PaidAmount += in.Amount
	inv.PendingAmount = inv.GrandTotal - inv.PaidAmount
	inv.PaymentStatus = domain.PaymentStatusFor(inv.GrandTotal, inv.PaidAmount)
	if err := s.invoiceRepo.UpdatePayment(ctx, inv); err != nil {
		return nil, err
	}

	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	payment := &domain.Payment{
		ID:         uuid.New(),
		InvoiceID:  inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     in.Amount,
		Method:     strings.TrimSpace(in.Method),
		Reference:  strings.TrimSpace(in.Reference),
		PaidAt:     paidAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("invoice_id", inv.ID.String()).
		Float64("amount", in.Amount).
		Str("payment_status", string(inv.PaymentStatus)).
		Msg("payment allocated")
	return inv, nil
}

func (s *invoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	if _, _, err := s.FindAnywhere(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

// Archive moves an invoice from the live store into the archived store.
// The copy is inserted first so a failure never loses the invoice.
func (s *invoiceService) Archive(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrInvoiceNotFound) {
			if _, archErr := s.archiveRepo.GetByID(ctx, id); archErr == nil {
				return nil, domain.ErrInvoiceAlreadyArchived
			}
		}
		return nil, err
	}

	if err := s.archiveRepo.Insert(ctx, inv); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("invoiceService.Archive: archived copy written but live delete failed: %w", err)
	}

	s.log.Info().
		Str("invoice_id", inv.ID.String()).
		Str("invoice_number", inv.InvoiceNumber).
		Msg("invoice archived")
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, id)
}
