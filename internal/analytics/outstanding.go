package analytics

import (
	"sort"

	"rollstock/internal/domain"
)

// AmountRange bounds a pending-amount filter. Nil bounds are open, and
// the filter applies independently to each reconciler source before the
// sources merge.
type AmountRange struct {
	Min *float64
	Max *float64
}

// Contains reports whether v falls inside the (inclusive) range.
func (r AmountRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

// NormalizeInvoice maps a live invoice into the common pending shape.
func NormalizeInvoice(inv domain.Invoice) domain.PendingInvoice {
	return domain.PendingInvoice{
		InvoiceID:     inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate,
		TotalAmount:   Round2(inv.GrandTotal),
		PaidAmount:    Round2(inv.PaidAmount),
		PendingAmount: Round2(inv.PendingAmount),
		PaymentStatus: inv.PaymentStatus,
		Type:          domain.PendingCurrent,
	}
}

// NormalizeOutstanding maps an opening-outstanding record into the
// common pending shape. The opening amount plays the role of the total
// and the adjusted amount that of money already received.
func NormalizeOutstanding(o domain.OpeningOutstanding) domain.PendingInvoice {
	return domain.PendingInvoice{
		InvoiceID:     o.InvoiceID,
		InvoiceNumber: o.InvoiceNumber,
		InvoiceDate:   o.InvoiceDate,
		TotalAmount:   Round2(o.OpeningPendingAmount),
		PaidAmount:    Round2(o.AdjustedAmount),
		PendingAmount: Round2(o.BalancePending),
		PaymentStatus: domain.PaymentStatusFor(o.OpeningPendingAmount, o.AdjustedAmount),
		Type:          domain.PendingOpening,
	}
}

// MergePending filters each source by the amount range, merges them into
// one list ordered by invoice date (invoice number as tie-break), and
// computes the summary. Source totals are accumulated unrounded, rounded
// to 2 decimals independently, and the combined total is the sum of the
// two rounded figures.
func MergePending(current, opening []domain.PendingInvoice, r AmountRange) ([]domain.PendingInvoice, domain.PendingSummary) {
	merged := make([]domain.PendingInvoice, 0, len(current)+len(opening))

	var currentTotal, openingTotal float64
	for _, p := range current {
		if !r.Contains(p.PendingAmount) {
			continue
		}
		currentTotal += p.PendingAmount
		merged = append(merged, p)
	}
	for _, p := range opening {
		if !r.Contains(p.PendingAmount) {
			continue
		}
		openingTotal += p.PendingAmount
		merged = append(merged, p)
	}

	sort.Slice(merged, func(i, j int) bool {
		if !merged[i].InvoiceDate.Equal(merged[j].InvoiceDate) {
			return merged[i].InvoiceDate.Before(merged[j].InvoiceDate)
		}
		return merged[i].InvoiceNumber < merged[j].InvoiceNumber
	})

	summary := domain.PendingSummary{
		TotalCurrentPending:     Round2(currentTotal),
		TotalOpeningOutstanding: Round2(openingTotal),
		InvoiceCount:            len(merged),
	}
	summary.TotalPending = Round2(summary.TotalCurrentPending + summary.TotalOpeningOutstanding)

	return merged, summary
}
