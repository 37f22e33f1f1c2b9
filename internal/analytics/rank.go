package analytics

import "sort"

// SortMetric selects which aggregate a report is ranked by. "profit"
// ranks by revenue: line items carry no cost price, so revenue is the
// closest stored measure (see DESIGN notes).
type SortMetric string

const (
	SortQuantity SortMetric = "quantity"
	SortRevenue  SortMetric = "revenue"
	SortWidth    SortMetric = "width"
	SortProfit   SortMetric = "profit"
)

// SortOrder is asc or desc; anything else is treated as desc.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// ParseSortMetric is lenient: unrecognized metrics rank by revenue.
func ParseSortMetric(s string) SortMetric {
	switch SortMetric(s) {
	case SortQuantity, SortRevenue, SortWidth, SortProfit:
		return SortMetric(s)
	default:
		return SortRevenue
	}
}

// ParseSortOrder is lenient: anything but "asc" is descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(s) == OrderAsc {
		return OrderAsc
	}
	return OrderDesc
}

// SortRows orders rows by the metric and direction, tie-broken on group
// key ascending so the ordering is deterministic.
func SortRows(rows []GroupRow, metric SortMetric, order SortOrder) {
	value := func(r GroupRow) float64 {
		switch metric {
		case SortQuantity:
			return r.TotalQuantity
		case SortWidth:
			return r.Width
		default: // revenue, profit
			return r.TotalRevenue
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		vi, vj := value(rows[i]), value(rows[j])
		if vi != vj {
			if order == OrderAsc {
				return vi < vj
			}
			return vi > vj
		}
		return rows[i].Key < rows[j].Key
	})
}

// Limit truncates the data rows. A non-positive limit keeps everything.
// Callers must Summarize before limiting: the limit affects only the
// returned data, never the summary totals.
func Limit(rows []GroupRow, n int) []GroupRow {
	if n <= 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Summary holds grand totals over the full grouped result set.
type Summary struct {
	GroupCount    int     `json:"group_count"`
	TotalQuantity float64 `json:"total_quantity"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalInvoices int     `json:"total_invoices"`
}

// Summarize computes totals over every group. Call it on the full set
// before applying Limit. TotalInvoices sums per-group contributing
// invoice counts; an invoice spanning two buckets counts in both.
func Summarize(rows []GroupRow) Summary {
	var s Summary
	s.GroupCount = len(rows)
	for _, r := range rows {
		s.TotalQuantity += r.TotalQuantity
		s.TotalRevenue += r.TotalRevenue
		s.TotalInvoices += r.InvoiceCount
	}
	s.TotalQuantity = Round2(s.TotalQuantity)
	s.TotalRevenue = Round2(s.TotalRevenue)
	return s
}
