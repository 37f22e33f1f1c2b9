package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rollstock/internal/domain"
)

// PaymentRepository is the append-only payment allocation log.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error)
	ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Payment, error)
	SumAmountBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error)
}
