package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"rollstock/internal/domain"
	"rollstock/internal/port"
)

type outstandingRepo struct {
	db *sqlx.DB
}

// NewOutstandingRepo creates a new PostgreSQL-backed OutstandingRepository.
func NewOutstandingRepo(db *sqlx.DB) port.OutstandingRepository {
	return &outstandingRepo{db: db}
}

func (r *outstandingRepo) Create(ctx context.Context, o *domain.OpeningOutstanding) error {
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now

	query := `INSERT INTO opening_outstandings (id, invoice_id, invoice_number, invoice_date,
		customer_id, opening_pending_amount, adjusted_amount, balance_pending, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.InvoiceID, o.InvoiceNumber, o.InvoiceDate, o.CustomerID,
		o.OpeningPendingAmount, o.AdjustedAmount, o.BalancePending, o.CreatedAt, o.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateOutstanding
		}
		return fmt.Errorf("outstandingRepo.Create: %w", err)
	}
	return nil
}

func (r *outstandingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OpeningOutstanding, error) {
	var o domain.OpeningOutstanding
	err := r.db.GetContext(ctx, &o, "SELECT * FROM opening_outstandings WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOutstandingNotFound
		}
		return nil, fmt.Errorf("outstandingRepo.GetByID: %w", err)
	}
	return &o, nil
}

func (r *outstandingRepo) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*domain.OpeningOutstanding, error) {
	var o domain.OpeningOutstanding
	err := r.db.GetContext(ctx, &o, "SELECT * FROM opening_outstandings WHERE invoice_id = $1", invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOutstandingNotFound
		}
		return nil, fmt.Errorf("outstandingRepo.GetByInvoiceID: %w", err)
	}
	return &o, nil
}

func (r *outstandingRepo) List(ctx context.Context, offset, limit int) ([]domain.OpeningOutstanding, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM opening_outstandings"); err != nil {
		return nil, 0, fmt.Errorf("outstandingRepo.List count: %w", err)
	}

	var records []domain.OpeningOutstanding
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM opening_outstandings ORDER BY invoice_date ASC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("outstandingRepo.List: %w", err)
	}
	return records, total, nil
}

func (r *outstandingRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	var records []domain.OpeningOutstanding
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM opening_outstandings WHERE customer_id = $1 ORDER BY invoice_date ASC", customerID)
	if err != nil {
		return nil, fmt.Errorf("outstandingRepo.ListByCustomer: %w", err)
	}
	return records, nil
}

func (r *outstandingRepo) ListPendingByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.OpeningOutstanding, error) {
	var records []domain.OpeningOutstanding
	err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM opening_outstandings WHERE customer_id = $1 AND balance_pending > 0 ORDER BY invoice_date ASC",
		customerID)
	if err != nil {
		return nil, fmt.Errorf("outstandingRepo.ListPendingByCustomer: %w", err)
	}
	return records, nil
}

func (r *outstandingRepo) UpdateAdjusted(ctx context.Context, o *domain.OpeningOutstanding) error {
	o.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE opening_outstandings SET adjusted_amount = $1, balance_pending = $2, updated_at = $3
		 WHERE id = $4`,
		o.AdjustedAmount, o.BalancePending, o.UpdatedAt, o.ID)
	if err != nil {
		return fmt.Errorf("outstandingRepo.UpdateAdjusted: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrOutstandingNotFound
	}
	return nil
}

func (r *outstandingRepo) SumBalanceByCustomer(ctx context.Context, customerID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		"SELECT COALESCE(SUM(balance_pending), 0) FROM opening_outstandings WHERE customer_id = $1", customerID)
	if err != nil {
		return 0, fmt.Errorf("outstandingRepo.SumBalanceByCustomer: %w", err)
	}
	return sum, nil
}
