package analytics

import (
	"sort"

	"github.com/google/uuid"
)

// TrendPoint is one period in a revenue time series, ordered ascending.
type TrendPoint struct {
	Period          string   `json:"period"`
	TotalRevenue    float64  `json:"total_revenue"`
	TotalQuantity   float64  `json:"total_quantity"`
	InvoiceCount    int      `json:"invoice_count"`
	AvgInvoiceValue float64  `json:"avg_invoice_value"`
	GrowthRate      *float64 `json:"growth_rate"`
}

// Forecast is a trailing moving average over the last three periods.
// The window is fixed at 3 and the confidence label is a constant.
type Forecast struct {
	NextPeriodRevenue float64 `json:"next_period_revenue"`
	Method            string  `json:"method"`
	Confidence        string  `json:"confidence"`
}

const forecastWindow = 3

// BuildTrend buckets facts into periods and computes per-period revenue,
// quantity, invoice count, average invoice value, and period-over-period
// growth. Points come back ordered ascending by period.
func BuildTrend(facts []LineFact, bucket TimeBucket) []TrendPoint {
	if bucket == BucketNone {
		bucket = BucketMonth
	}

	type acc struct {
		revenue  float64
		quantity float64
		invoices map[uuid.UUID]struct{}
	}
	accs := make(map[string]*acc)
	for _, f := range facts {
		p := PeriodLabel(f.InvoiceDate, bucket)
		a, ok := accs[p]
		if !ok {
			a = &acc{invoices: make(map[uuid.UUID]struct{})}
			accs[p] = a
		}
		a.revenue += f.Revenue
		a.quantity += f.Quantity
		a.invoices[f.InvoiceID] = struct{}{}
	}

	points := make([]TrendPoint, 0, len(accs))
	for period, a := range accs {
		p := TrendPoint{
			Period:        period,
			TotalRevenue:  Round2(a.revenue),
			TotalQuantity: Round2(a.quantity),
			InvoiceCount:  len(a.invoices),
		}
		if p.InvoiceCount > 0 {
			p.AvgInvoiceValue = Round2(a.revenue / float64(p.InvoiceCount))
		}
		points = append(points, p)
	}

	// Period labels are zero-padded, so lexicographic order is
	// chronological order.
	sort.Slice(points, func(i, j int) bool { return points[i].Period < points[j].Period })

	fillGrowthRates(points)
	return points
}

// fillGrowthRates sets GrowthRate = (cur-prev)/prev*100 rounded to 2
// decimals. The first period has no prior and a zero-revenue prior has
// no meaningful rate; both stay nil.
func fillGrowthRates(points []TrendPoint) {
	for i := 1; i < len(points); i++ {
		prev := points[i-1].TotalRevenue
		if prev == 0 {
			continue
		}
		rate := Round2((points[i].TotalRevenue - prev) / prev * 100)
		points[i].GrowthRate = &rate
	}
}

// MovingAverageForecast returns the trailing mean of the last three
// periods' revenue. The divisor stays 3 even when fewer than three
// periods exist; that understates short series and is kept as-is (a
// flagged product decision, not a bug to fix here). Returns nil for an
// empty series.
func MovingAverageForecast(points []TrendPoint) *Forecast {
	if len(points) == 0 {
		return nil
	}
	start := len(points) - forecastWindow
	if start < 0 {
		start = 0
	}
	var sum float64
	for _, p := range points[start:] {
		sum += p.TotalRevenue
	}
	return &Forecast{
		NextPeriodRevenue: Round2(sum / forecastWindow),
		Method:            "3-period moving average",
		Confidence:        "Medium",
	}
}
