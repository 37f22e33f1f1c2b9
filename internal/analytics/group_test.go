package analytics_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rollstock/internal/analytics"
)

func fact(invoice uuid.UUID, day time.Time, width, qty, price, revenue float64) analytics.LineFact {
	return analytics.LineFact{
		InvoiceID:     invoice,
		InvoiceNumber: "INV-" + invoice.String()[:8],
		InvoiceDate:   day,
		CustomerID:    uuid.Nil,
		Width:         width,
		Quantity:      qty,
		UnitPrice:     price,
		Revenue:       revenue,
	}
}

func TestAggregate_ByWidth(t *testing.T) {
	inv1, inv2 := uuid.New(), uuid.New()
	day := date(2025, time.June, 10)

	facts := []analytics.LineFact{
		fact(inv1, day, 100, 5, 200, 1000),
		fact(inv1, day, 100, 3, 210, 630),
		fact(inv2, day, 100, 2, 190, 380),
		fact(inv2, day, 150, 4, 300, 1200),
	}

	rows := analytics.Aggregate(facts, analytics.GroupSpec{Dimension: analytics.DimWidth})
	require.Len(t, rows, 2)

	w100 := rows[0]
	assert.Equal(t, "100", w100.Key)
	assert.Equal(t, 10.0, w100.TotalQuantity)
	assert.Equal(t, 2010.0, w100.TotalRevenue)
	assert.Equal(t, 200.0, w100.AvgUnitPrice)
	assert.Equal(t, 3, w100.LineCount)
	// Two lines share inv1; the invoice count deduplicates.
	assert.Equal(t, 2, w100.InvoiceCount)

	w150 := rows[1]
	assert.Equal(t, "150", w150.Key)
	assert.Equal(t, 1200.0, w150.TotalRevenue)
	assert.Equal(t, 1, w150.InvoiceCount)

	// Shares are computed against the filtered set's own totals.
	assert.InDelta(t, 62.62, w100.RevenueShare, 0.001)
	assert.InDelta(t, 37.38, w150.RevenueShare, 0.001)
	assert.InDelta(t, 71.43, w100.QuantityShare, 0.001)
}

func TestAggregate_WidthWithTimeBucket(t *testing.T) {
	inv1, inv2 := uuid.New(), uuid.New()
	facts := []analytics.LineFact{
		fact(inv1, date(2025, time.April, 5), 100, 1, 10, 10),
		fact(inv2, date(2025, time.May, 5), 100, 2, 10, 20),
	}

	rows := analytics.Aggregate(facts, analytics.GroupSpec{
		Dimension:  analytics.DimWidth,
		TimeBucket: analytics.BucketMonth,
	})
	require.Len(t, rows, 2)
	assert.Equal(t, "100|2025-04", rows[0].Key)
	assert.Equal(t, "2025-04", rows[0].Period)
	assert.Equal(t, "100|2025-05", rows[1].Key)
}

func TestPeriodLabel(t *testing.T) {
	d := date(2025, time.February, 3)
	assert.Equal(t, "2025-02", analytics.PeriodLabel(d, analytics.BucketMonth))
	assert.Equal(t, "2025-Q1", analytics.PeriodLabel(d, analytics.BucketQuarter))
	assert.Equal(t, "2025", analytics.PeriodLabel(d, analytics.BucketYear))

	year, week := d.ISOWeek()
	assert.Equal(t, 2025, year)
	assert.Equal(t, "2025-W06", analytics.PeriodLabel(d, analytics.BucketWeek))
	assert.Equal(t, 6, week)
}

func TestAggregate_RoundsOnEmit(t *testing.T) {
	inv := uuid.New()
	day := date(2025, time.June, 1)
	facts := []analytics.LineFact{
		fact(inv, day, 100, 1, 0, 10.004),
		fact(inv, day, 100, 1, 0, 10.004),
	}

	rows := analytics.Aggregate(facts, analytics.GroupSpec{Dimension: analytics.DimWidth})
	require.Len(t, rows, 1)
	// Accumulation is unrounded: 20.008 rounds to 20.01, not 2 * 10.00.
	assert.Equal(t, 20.01, rows[0].TotalRevenue)
}

func TestFilterFacts_WidthRange(t *testing.T) {
	inv := uuid.New()
	day := date(2025, time.June, 1)
	facts := []analytics.LineFact{
		fact(inv, day, 99, 1, 0, 1),
		fact(inv, day, 100, 1, 0, 1),
		fact(inv, day, 200, 1, 0, 1),
		fact(inv, day, 201, 1, 0, 1),
	}

	out := analytics.FilterFacts(facts, analytics.ParseWidthFilter("100-200"))
	require.Len(t, out, 2)
	assert.Equal(t, 100.0, out[0].Width)
	assert.Equal(t, 200.0, out[1].Width)
}
