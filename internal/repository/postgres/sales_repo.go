package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"rollstock/internal/analytics"
	"rollstock/internal/port"
)

type salesRepo struct {
	db *sqlx.DB
}

// NewSalesRepo creates a new PostgreSQL-backed SalesRepository.
func NewSalesRepo(db *sqlx.DB) port.SalesRepository {
	return &salesRepo{db: db}
}

// buildFactWhere constructs a dynamic WHERE clause for flattened
// line-item queries. The width filter applies to the flattened line
// item, never to the invoice in aggregate.
func buildFactWhere(filter analytics.FactFilter) (clause string, args []interface{}) {
	clause = "WHERE 1=1"
	argN := 1

	if filter.StartDate != nil {
		clause += fmt.Sprintf(" AND i.invoice_date >= $%d", argN)
		args = append(args, *filter.StartDate)
		argN++
	}
	if filter.EndDate != nil {
		clause += fmt.Sprintf(" AND i.invoice_date <= $%d", argN)
		args = append(args, *filter.EndDate)
		argN++
	}
	if filter.CustomerID != nil {
		clause += fmt.Sprintf(" AND i.customer_id = $%d", argN)
		args = append(args, *filter.CustomerID)
		argN++
	}
	if filter.ProductID != nil {
		clause += fmt.Sprintf(" AND item->>'product_id' = $%d", argN)
		args = append(args, filter.ProductID.String())
		argN++
	}
	switch {
	case filter.Width.Exact != nil:
		clause += fmt.Sprintf(" AND COALESCE((item->>'width')::numeric, 0) = $%d", argN)
		args = append(args, *filter.Width.Exact)
		argN++
	case filter.Width.Min != nil && filter.Width.Max != nil:
		clause += fmt.Sprintf(" AND COALESCE((item->>'width')::numeric, 0) BETWEEN $%d AND $%d", argN, argN+1)
		args = append(args, *filter.Width.Min, *filter.Width.Max)
		argN += 2 //nolint:ineffassign // argN kept incremented for consistency
	}

	return clause, args
}

func (r *salesRepo) LineFacts(ctx context.Context, filter analytics.FactFilter) ([]analytics.LineFact, error) {
	whereClause, args := buildFactWhere(filter)

	query := fmt.Sprintf(`SELECT
		i.id AS invoice_id,
		i.invoice_number,
		i.invoice_date,
		i.customer_id,
		c.name AS customer_name,
		COALESCE(NULLIF(item->>'product_id', ''), '00000000-0000-0000-0000-000000000000')::uuid AS product_id,
		COALESCE(item->>'product_name', '') AS product_name,
		COALESCE((item->>'width')::numeric, 0) AS width,
		COALESCE((item->>'quantity')::numeric, 0) AS quantity,
		COALESCE((item->>'unit_price')::numeric, 0) AS unit_price,
		COALESCE((item->>'total_price')::numeric, 0) AS revenue
	FROM invoices i
	JOIN customers c ON c.id = i.customer_id,
	jsonb_array_elements(i.line_items) AS item
	%s
	ORDER BY i.invoice_date ASC, i.invoice_number ASC`, whereClause)

	var facts []analytics.LineFact
	if err := sqlx.SelectContext(ctx, r.db, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("salesRepo.LineFacts: %w", err)
	}
	return facts, nil
}
