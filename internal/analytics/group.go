package analytics

import (
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LineFact is one flattened invoice line item: the unit the grouping
// engine aggregates over. Revenue carries the stored line total_price
// as-is.
type LineFact struct {
	InvoiceID     uuid.UUID `db:"invoice_id"`
	InvoiceNumber string    `db:"invoice_number"`
	InvoiceDate   time.Time `db:"invoice_date"`
	CustomerID    uuid.UUID `db:"customer_id"`
	CustomerName  string    `db:"customer_name"`
	ProductID     uuid.UUID `db:"product_id"`
	ProductName   string    `db:"product_name"`
	Width         float64   `db:"width"`
	Quantity      float64   `db:"quantity"`
	UnitPrice     float64   `db:"unit_price"`
	Revenue       float64   `db:"revenue"`
}

// Dimension selects what a report groups by.
type Dimension string

const (
	DimWidth    Dimension = "width"
	DimProduct  Dimension = "product"
	DimCustomer Dimension = "customer"
	DimMonth    Dimension = "month"
)

// TimeBucket selects the period granularity for time-bucketed groupings.
type TimeBucket string

const (
	BucketNone    TimeBucket = ""
	BucketMonth   TimeBucket = "month"
	BucketQuarter TimeBucket = "quarter"
	BucketWeek    TimeBucket = "week"
	BucketYear    TimeBucket = "year"
)

// ParseTimeBucket maps a groupBy parameter onto a TimeBucket, falling
// back to none for unrecognized values.
func ParseTimeBucket(s string) TimeBucket {
	switch TimeBucket(s) {
	case BucketMonth, BucketQuarter, BucketWeek, BucketYear:
		return TimeBucket(s)
	default:
		return BucketNone
	}
}

// PeriodLabel formats an invoice date into its bucket label. Labels are
// zero-padded so lexicographic order matches chronological order.
func PeriodLabel(t time.Time, bucket TimeBucket) string {
	switch bucket {
	case BucketQuarter:
		quarter := (int(t.Month())-1)/3 + 1
		return t.Format("2006") + "-Q" + strconv.Itoa(quarter)
	case BucketWeek:
		year, week := t.ISOWeek()
		return strconv.Itoa(year) + "-W" + pad2(week)
	case BucketYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

// GroupSpec declares a grouping: the dimension plus an optional time
// bucket (combined with the width dimension for width+period reports).
type GroupSpec struct {
	Dimension  Dimension
	TimeBucket TimeBucket
}

// GroupRow is one aggregated bucket. Monetary fields are rounded to 2
// decimals on emit; accumulation is unrounded.
type GroupRow struct {
	Key           string   `json:"key"`
	Label         string   `json:"label"`
	Width         float64  `json:"width,omitempty"`
	Period        string   `json:"period,omitempty"`
	TotalQuantity float64  `json:"total_quantity"`
	TotalRevenue  float64  `json:"total_revenue"`
	AvgUnitPrice  float64  `json:"avg_unit_price"`
	InvoiceCount  int      `json:"invoice_count"`
	LineCount     int      `json:"line_count"`
	Products      []string `json:"products,omitempty"`
	Widths        []float64 `json:"widths,omitempty"`
	Customers     []string `json:"customers,omitempty"`
	RevenueShare  float64  `json:"revenue_share"`
	QuantityShare float64  `json:"quantity_share"`
}

type groupAcc struct {
	label        string
	width        float64
	period       string
	quantity     float64
	revenue      float64
	unitPriceSum float64
	lineCount    int
	invoices     map[uuid.UUID]struct{}
	products     map[string]struct{}
	widths       map[float64]struct{}
	customers    map[string]struct{}
}

// Aggregate buckets facts by the spec's group key and computes per-bucket
// totals, averages, counts, and deduplicated distinct sets. Percentage
// shares are computed against this filtered result set's own totals, not
// an unfiltered baseline. Rows come back ordered by group key ascending.
func Aggregate(facts []LineFact, spec GroupSpec) []GroupRow {
	accs := make(map[string]*groupAcc)

	for _, f := range facts {
		key, label, width, period := groupKey(f, spec)
		acc, ok := accs[key]
		if !ok {
			acc = &groupAcc{
				label:     label,
				width:     width,
				period:    period,
				invoices:  make(map[uuid.UUID]struct{}),
				products:  make(map[string]struct{}),
				widths:    make(map[float64]struct{}),
				customers: make(map[string]struct{}),
			}
			accs[key] = acc
		}
		acc.quantity += f.Quantity
		acc.revenue += f.Revenue
		acc.unitPriceSum += f.UnitPrice
		acc.lineCount++
		acc.invoices[f.InvoiceID] = struct{}{}
		if f.ProductName != "" {
			acc.products[f.ProductName] = struct{}{}
		}
		acc.widths[f.Width] = struct{}{}
		if f.CustomerName != "" {
			acc.customers[f.CustomerName] = struct{}{}
		}
	}

	var totalQuantity, totalRevenue float64
	for _, acc := range accs {
		totalQuantity += acc.quantity
		totalRevenue += acc.revenue
	}

	rows := make([]GroupRow, 0, len(accs))
	for key, acc := range accs {
		row := GroupRow{
			Key:           key,
			Label:         acc.label,
			Width:         acc.width,
			Period:        acc.period,
			TotalQuantity: Round2(acc.quantity),
			TotalRevenue:  Round2(acc.revenue),
			InvoiceCount:  len(acc.invoices),
			LineCount:     acc.lineCount,
			Products:      sortedStrings(acc.products),
			Widths:        sortedFloats(acc.widths),
			Customers:     sortedStrings(acc.customers),
		}
		if acc.lineCount > 0 {
			row.AvgUnitPrice = Round2(acc.unitPriceSum / float64(acc.lineCount))
		}
		if totalRevenue > 0 {
			row.RevenueShare = Round2(acc.revenue / totalRevenue * 100)
		}
		if totalQuantity > 0 {
			row.QuantityShare = Round2(acc.quantity / totalQuantity * 100)
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// groupKey builds the composite bucket key for a fact under a spec.
func groupKey(f LineFact, spec GroupSpec) (key, label string, width float64, period string) {
	switch spec.Dimension {
	case DimProduct:
		return f.ProductID.String(), f.ProductName, 0, ""
	case DimCustomer:
		return f.CustomerID.String(), f.CustomerName, 0, ""
	case DimMonth:
		p := PeriodLabel(f.InvoiceDate, BucketMonth)
		return p, p, 0, p
	default: // width, optionally time-bucketed
		w := strconv.FormatFloat(f.Width, 'f', -1, 64)
		if spec.TimeBucket == BucketNone {
			return w, w, f.Width, ""
		}
		p := PeriodLabel(f.InvoiceDate, spec.TimeBucket)
		return w + "|" + p, w + " / " + p, f.Width, p
	}
}

func sortedStrings(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func sortedFloats(set map[float64]struct{}) []float64 {
	if len(set) == 0 {
		return nil
	}
	out := make([]float64, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}

// FilterFacts applies a width filter in memory. Date, customer, and
// product filters are pushed down to SQL; width lives inside the
// flattened line item so it is also checked here for callers that build
// facts outside the repository.
func FilterFacts(facts []LineFact, wf WidthFilter) []LineFact {
	if wf.IsZero() {
		return facts
	}
	out := make([]LineFact, 0, len(facts))
	for _, f := range facts {
		if wf.Matches(f.Width) {
			out = append(out, f)
		}
	}
	return out
}
