package analytics

import (
	"time"

	"github.com/google/uuid"
)

// FactFilter narrows which invoice line facts a report aggregates over.
// Date, customer, and product filters are pushed down to SQL; the width
// filter applies to the flattened line item, not the invoice as a whole.
type FactFilter struct {
	StartDate  *time.Time
	EndDate    *time.Time
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
	Width      WidthFilter
}
