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

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed live InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const invoiceColumns = `id, invoice_number, customer_id, invoice_date, line_items,
	total_amount, cgst, sgst, igst, other_charges, grand_total,
	paid_amount, pending_amount, payment_status, created_at, updated_at`

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	now := time.Now().UTC()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.CustomerID, inv.InvoiceDate, inv.LineItems,
		inv.TotalAmount, inv.CGST, inv.SGST, inv.IGST, inv.OtherCharges, inv.GrandTotal,
		inv.PaidAmount, inv.PendingAmount, inv.PaymentStatus, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateInvoiceNumber
		}
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

func (r *invoiceRepo) GetByNumber(ctx context.Context, invoiceNumber string) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := r.db.GetContext(ctx, &inv, "SELECT * FROM invoices WHERE invoice_number = $1", invoiceNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByNumber: %w", err)
	}
	return &inv, nil
}

// buildInvoiceWhere constructs a dynamic WHERE clause from the list
// filter, with positional args starting at $1.
func buildInvoiceWhere(filter domain.InvoiceListFilter) (clause string, args []interface{}) {
	clause = "WHERE 1=1"
	argN := 1

	if filter.CustomerID != nil {
		clause += fmt.Sprintf(" AND customer_id = $%d", argN)
		args = append(args, *filter.CustomerID)
		argN++
	}
	if filter.PaymentStatus != nil {
		clause += fmt.Sprintf(" AND payment_status = $%d", argN)
		args = append(args, *filter.PaymentStatus)
		argN++
	}
	if filter.StartDate != nil {
		clause += fmt.Sprintf(" AND invoice_date >= $%d", argN)
		args = append(args, *filter.StartDate)
		argN++
	}
	if filter.EndDate != nil {
		clause += fmt.Sprintf(" AND invoice_date <= $%d", argN)
		args = append(args, *filter.EndDate)
		argN++
	}
	return clause, args
}

func (r *invoiceRepo) List(ctx context.Context, filter domain.InvoiceListFilter) ([]domain.Invoice, int, error) {
	whereClause, args := buildInvoiceWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM invoices " + whereClause
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List count: %w", err)
	}

	dataQuery := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY invoice_date DESC, invoice_number DESC OFFSET %d LIMIT %d",
		whereClause, filter.Offset, filter.Limit)

	var invoices []domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, dataQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.List: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) UpdatePayment(ctx context.Context, inv *domain.Invoice) error {
	inv.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE invoices SET paid_amount = $1, pending_amount = $2, payment_status = $3, updated_at = $4
		 WHERE id = $5`,
		inv.PaidAmount, inv.PendingAmount, inv.PaymentStatus, inv.UpdatedAt, inv.ID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdatePayment: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM invoices WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

func (r *invoiceRepo) ListPendingByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices
		 WHERE customer_id = $1 AND (payment_status IN ('unpaid', 'partial') OR pending_amount > 0)
		 ORDER BY invoice_date ASC`, customerID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListPendingByCustomer: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ListByCustomerRange(ctx context.Context, customerID uuid.UUID, start, end time.Time) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		`SELECT * FROM invoices
		 WHERE customer_id = $1 AND invoice_date >= $2 AND invoice_date <= $3
		 ORDER BY invoice_date ASC`, customerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByCustomerRange: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) SumBilledBefore(ctx context.Context, customerID uuid.UUID, before time.Time) (float64, error) {
	var sum float64
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(grand_total), 0) FROM invoices i
		 WHERE i.customer_id = $1 AND i.invoice_date < $2
		   AND NOT EXISTS (SELECT 1 FROM opening_outstandings oo WHERE oo.invoice_id = i.id)`,
		customerID, before)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.SumBilledBefore: %w", err)
	}
	return sum, nil
}
