package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

type paymentRepo struct {
	db *sqlx.DB
}

// NewPaymentRepo creates a new PostgreSQL-backed PaymentRepository.
func NewPaymentRepo(db *sqlx.DB) port.PaymentRepository {
	return &paymentRepo{db: db}
}

func (r *paymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	p.CreatedAt = time.Now().UTC()

	query := `INSERT INTO payments (id, invoice_id, customer_id, amount, method, reference, paid_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.InvoiceID, p.CustomerID, p.Amount, p.Method, p.Reference, p.PaidAt, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("paymentRepo.Create: %w", err)
	}
	return nil
}

func (r *paymentRepo) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		"SELECT * FROM payments WHERE invoice_id = $1 ORDER BY paid_at ASC", invoiceID)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByInvoice: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.db.SelectContext(ctx, &payments,
		`SELECT * FROM payments
		 WHERE customer_id = $1 AND paid_at >= $2 AND paid_at <= $3
		 ORDER BY paid_at ASC`, customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("paymentRepo.ListByCustomerRange: %w", err)
	}
	return payments, nil
}

func (r *paymentRepo) SumAmountBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE customer_id = $1 AND paid_at < $2",
		customerID, before)
	if err != nil {
		return 0, fmt.Errorf("paymentRepo.SumAmountBefore: %w", err)
	}
	return sum, nil
}
