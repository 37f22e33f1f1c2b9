package domain

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceListFilter narrows invoice listings. Zero values mean "no
// filter"; Limit defaults are applied by the handler.
type InvoiceListFilter struct {
	CustomerID    *uuid.UUID
	PaymentStatus *PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Offset        int
	Limit         int
}
