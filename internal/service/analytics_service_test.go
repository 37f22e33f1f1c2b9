package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollstock/internal/analytics"
	"rollstock/internal/service"
	"rollstock/mocks"
)

func lineFact(day time.Time, customer uuid.UUID, width, qty, revenue float64) analytics.LineFact {
	return analytics.LineFact{
		InvoiceID:    uuid.New(),
		InvoiceDate:  day,
		CustomerID:   customer,
		CustomerName: "Customer " + customer.String()[:4],
		Width:        width,
		Quantity:     qty,
		Revenue:      revenue,
	}
}

func fyWindow(startYear int) (time.Time, time.Time) {
	start := time.Date(startYear, time.April, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(startYear+1, time.March, 31, 23, 59, 59, 999000000, time.UTC)
	return start, end
}

func TestAnalyticsService_WidthDistribution_SummaryBeforeLimit(t *testing.T) {
	salesRepo := new(mocks.MockSalesRepo)
	svc := service.NewAnalyticsService(salesRepo)

	start, end := fyWindow(2025)
	day := start.AddDate(0, 2, 0)
	customer := uuid.New()
	salesRepo.On("LineFacts", mock.Anything, mock.Anything).Return([]analytics.LineFact{
		lineFact(day, customer, 100, 5, 1000),
		lineFact(day, customer, 150, 3, 600),
		lineFact(day, customer, 200, 1, 200),
	}, nil)

	report, err := svc.WidthDistribution(context.Background(), service.WidthDistributionOptions{
		SalesReportOptions: service.SalesReportOptions{
			StartDate: &start,
			EndDate:   &end,
			SortBy:    analytics.SortRevenue,
			SortOrder: analytics.OrderDesc,
			Limit:     1,
		},
	})

	require.NoError(t, err)
	// The limit truncates the data rows only; the summary still covers
	// all three width groups.
	require.Len(t, report.Data, 1)
	assert.Equal(t, "100", report.Data[0].Key)
	assert.Equal(t, 3, report.Summary.GroupCount)
	assert.Equal(t, 1800.0, report.Summary.TotalRevenue)
	assert.Equal(t, 9.0, report.Summary.TotalQuantity)
}

func TestAnalyticsService_WidthDistribution_CompareWithLastYear(t *testing.T) {
	salesRepo := new(mocks.MockSalesRepo)
	svc := service.NewAnalyticsService(salesRepo)

	start, end := fyWindow(2025)
	customer := uuid.New()

	salesRepo.On("LineFacts", mock.Anything, mock.MatchedBy(func(f analytics.FactFilter) bool {
		return f.StartDate != nil && f.StartDate.Year() == 2025
	})).Return([]analytics.LineFact{
		lineFact(start.AddDate(0, 1, 0), customer, 100, 2, 300),
	}, nil)
	salesRepo.On("LineFacts", mock.Anything, mock.MatchedBy(func(f analytics.FactFilter) bool {
		return f.StartDate != nil && f.StartDate.Year() == 2024
	})).Return([]analytics.LineFact{
		lineFact(start.AddDate(-1, 1, 0), customer, 100, 4, 200),
	}, nil)

	report, err := svc.WidthDistribution(context.Background(), service.WidthDistributionOptions{
		SalesReportOptions:  service.SalesReportOptions{StartDate: &start, EndDate: &end},
		CompareWithLastYear: true,
	})

	require.NoError(t, err)
	require.NotNil(t, report.Comparison)
	assert.Equal(t, 200.0, report.Comparison.PreviousSummary.TotalRevenue)
	require.NotNil(t, report.Comparison.RevenueGrowthPct)
	assert.Equal(t, 50.0, *report.Comparison.RevenueGrowthPct)
	require.NotNil(t, report.Comparison.QuantityGrowthPct)
	assert.Equal(t, -50.0, *report.Comparison.QuantityGrowthPct)
}

func TestAnalyticsService_WidthDistributionMulti(t *testing.T) {
	salesRepo := new(mocks.MockSalesRepo)
	svc := service.NewAnalyticsService(salesRepo)

	start, end := fyWindow(2025)
	day := start.AddDate(0, 1, 0)
	customer := uuid.New()
	salesRepo.On("LineFacts", mock.Anything, mock.Anything).Return([]analytics.LineFact{
		lineFact(day, customer, 120, 1, 100),
	}, nil)

	reports, err := svc.WidthDistributionMulti(context.Background(), service.SalesReportOptions{
		StartDate: &start,
		EndDate:   &end,
	}, []string{"100-150", "200-250"})

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "100-150", reports[0].WidthRange)
	assert.Equal(t, "200-250", reports[1].WidthRange)
}

func TestAnalyticsService_CustomerAnalytics_BucketFilters(t *testing.T) {
	salesRepo := new(mocks.MockSalesRepo)
	svc := service.NewAnalyticsService(salesRepo)

	start, end := fyWindow(2025)
	day := start.AddDate(0, 1, 0)
	big, small := uuid.New(), uuid.New()
	salesRepo.On("LineFacts", mock.Anything, mock.Anything).Return([]analytics.LineFact{
		lineFact(day, big, 100, 50, 10000),
		lineFact(day, small, 100, 2, 400),
	}, nil)

	minQty := 10.0
	report, err := svc.CustomerAnalytics(context.Background(), service.CustomerAnalyticsOptions{
		SalesReportOptions: service.SalesReportOptions{StartDate: &start, EndDate: &end},
		MinQuantity:        &minQty,
	})

	require.NoError(t, err)
	require.Len(t, report.Data, 1)
	assert.Equal(t, big.String(), report.Data[0].Key)
	// The summary reflects the filtered customer set, not the raw facts.
	assert.Equal(t, 1, report.Summary.GroupCount)
	assert.Equal(t, 10000.0, report.Summary.TotalRevenue)
}

func TestAnalyticsService_SalesTrends_Forecast(t *testing.T) {
	salesRepo := new(mocks.MockSalesRepo)
	svc := service.NewAnalyticsService(salesRepo)

	now := time.Now().UTC()
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	customer := uuid.New()
	salesRepo.On("LineFacts", mock.Anything, mock.Anything).Return([]analytics.LineFact{
		lineFact(thisMonth.AddDate(0, -2, 3), customer, 100, 1, 300),
		lineFact(thisMonth.AddDate(0, -1, 3), customer, 100, 1, 600),
		lineFact(thisMonth.AddDate(0, 0, 3), customer, 100, 1, 900),
	}, nil)

	report, err := svc.SalesTrends(context.Background(), 6, analytics.BucketMonth, nil)

	require.NoError(t, err)
	require.Len(t, report.Data, 3)
	require.NotNil(t, report.Forecast)
	assert.Equal(t, 600.0, report.Forecast.NextPeriodRevenue)
}
