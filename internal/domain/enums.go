package domain

// PaymentStatus is a pure function of (grand_total, paid_amount),
// recomputed on every payment allocation rather than stored as a guarded
// state machine.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentOverpaid PaymentStatus = "overpaid"
)

// PaymentStatusFor derives the status from the invoice totals.
func PaymentStatusFor(grandTotal, paidAmount float64) PaymentStatus {
	switch {
	case paidAmount <= 0:
		return PaymentUnpaid
	case paidAmount < grandTotal:
		return PaymentPartial
	case paidAmount == grandTotal:
		return PaymentPaid
	default:
		return PaymentOverpaid
	}
}

// PendingType distinguishes the two reconciler sources.
type PendingType string

const (
	PendingCurrent PendingType = "current"
	PendingOpening PendingType = "opening"
)

// LedgerEntryType labels ledger rows.
const (
	LedgerEntryInvoice = "invoice"
	LedgerEntryPayment = "payment"
)
