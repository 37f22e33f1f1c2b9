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

type invoiceArchiveRepo struct {
	db *sqlx.DB
}

// NewInvoiceArchiveRepo creates a new PostgreSQL-backed archived invoice
// repository. Apart from Insert (used by the archiving move), callers
// treat this store as read-only.
func NewInvoiceArchiveRepo(db *sqlx.DB) port.InvoiceArchiveRepository {
	return &invoiceArchiveRepo{db: db}
}

func (r *invoiceArchiveRepo) Insert(ctx context.Context, inv *domain.Invoice) error {
	query := `INSERT INTO invoices_archive (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.InvoiceDate, inv.LineItems,
		inv.TotalAmount, inv.CGST, inv.SGST, inv.IGST, inv.OtherCharges, inv.GrandTotal,
		inv.PaidAmount, inv.PendingAmount, inv.PaymentStatus, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrInvoiceAlreadyArchived
		}
		return fmt.Errorf("invoiceArchiveRepo.Insert: %w", err)
	}
	return nil
}

func (r *invoiceArchiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices_archive WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceArchiveRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceArchiveRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices_archive WHERE invoice_number = $1", invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceArchiveRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

func (r *invoiceArchiveRepo) ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices_archive
		 WHERE customer_id = $1 AND invoice_date >= $2 AND invoice_date <= $3
		 ORDER BY invoice_date ASC`, customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("invoiceArchiveRepo.ListByCustomerRange: %w", err)
	}
	return invoices, nil
}

func (r *invoiceArchiveRepo) SumBilledBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(grand_total), 0) FROM invoices_archive a
		 WHERE a.customer_id = $1 AND a.invoice_date < $2
		   AND NOT EXISTS (SELECT 1 FROM opening_outstandings oo WHERE oo.invoice_id = a.id)`,
		customerID, before)
	if err != nil {
		return 0, fmt.Errorf("invoiceArchiveRepo.SumBilledBefore: %w", err)
	}
	return sum, nil
}
