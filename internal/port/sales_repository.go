package port

import (
	"context"

	"rollstock/internal/analytics"
)

// SalesRepository flattens the live invoice store's embedded line items
// into per-line facts for the aggregation engine.
type SalesRepository interface {
	LineFacts(ctx context.Context, filter analytics.FactFilter) ([]analytics.LineFact, error)
}
