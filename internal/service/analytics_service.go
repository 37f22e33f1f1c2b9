package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"rollstock/internal/analytics"
	"rollstock/internal/logger"
	"rollstock/internal/port"
)

// ReportPeriod is the resolved date window a report ran over, echoed back
// so callers can see what a lenient period token resolved to.
type ReportPeriod struct {
	Label     string    `json:"label,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// SalesReportOptions is the shared filter surface of the sales reports.
// Explicit dates win over the fiscal-year token; when both are absent the
// current fiscal year applies.
type SalesReportOptions struct {
	StartDate     *time.Time
	EndDate       *time.Time
	FinancialYear string
	CustomerID    *uuid.UUID
	ProductID     *uuid.UUID
	Width         analytics.WidthFilter
	TimeBucket    analytics.TimeBucket
	SortBy        analytics.SortMetric
	SortOrder     analytics.SortOrder
	Limit         int
}

// WidthDistributionOptions extends the shared options with the optional
// comparison and trend blocks of the width report.
type WidthDistributionOptions struct {
	SalesReportOptions
	CompareWithLastYear bool
	IncludeTimeTrend    bool
}

// PeriodComparison contrasts the report window with the same window one
// year earlier. Growth rates are nil when the earlier window had no
// revenue or quantity to compare against.
type PeriodComparison struct {
	PreviousPeriod    ReportPeriod      `json:"previous_period"`
	PreviousSummary   analytics.Summary `json:"previous_summary"`
	RevenueGrowthPct  *float64          `json:"revenue_growth_pct"`
	QuantityGrowthPct *float64          `json:"quantity_growth_pct"`
}

// SalesReport is a ranked grouping plus its pre-limit summary.
type SalesReport struct {
	Period  ReportPeriod         `json:"period"`
	Data    []analytics.GroupRow `json:"data"`
	Summary analytics.Summary    `json:"summary"`
}

// WidthDistributionReport is the width report with its optional blocks.
type WidthDistributionReport struct {
	SalesReport
	Comparison *PeriodComparison      `json:"comparison,omitempty"`
	TimeTrend  []analytics.TrendPoint `json:"time_trend,omitempty"`
}

// WidthBucketReport is one entry of the multi-range width report.
type WidthBucketReport struct {
	WidthRange string               `json:"width_range"`
	Data       []analytics.GroupRow `json:"data"`
	Summary    analytics.Summary    `json:"summary"`
}

// TrendReport is the time series plus its moving-average forecast.
type TrendReport struct {
	Period   ReportPeriod           `json:"period"`
	Data     []analytics.TrendPoint `json:"data"`
	Forecast *analytics.Forecast    `json:"forecast"`
}

// CustomerAnalyticsOptions adds the per-customer row filters applied to
// grouped buckets before ranking.
type CustomerAnalyticsOptions struct {
	SalesReportOptions
	MinQuantity      *float64
	MaxQuantity      *float64
	MinPurchaseValue *float64
}

// AnalyticsService runs the sales reports: flattened facts come from the
// repository, grouping and ranking happen in process.
type AnalyticsService interface {
	WidthDistribution(ctx context.Context, opts WidthDistributionOptions) (*WidthDistributionReport, error)
	WidthDistributionMulti(ctx context.Context, opts SalesReportOptions, widths []string) ([]WidthBucketReport, error)
	ProductSales(ctx context.Context, opts SalesReportOptions, groupBy string) (*SalesReport, error)
	CustomerAnalytics(ctx context.Context, opts CustomerAnalyticsOptions) (*SalesReport, error)
	SalesTrends(ctx context.Context, months int, bucket analytics.TimeBucket, customerID *uuid.UUID) (*TrendReport, error)
}

type analyticsService struct {
	salesRepo port.SalesRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService implementation.
func NewAnalyticsService(salesRepo port.SalesRepository) AnalyticsService {
	return &analyticsService{
		salesRepo: salesRepo,
		log:       logger.WithComponent("analytics_service"),
		now:       time.Now,
	}
}

// resolvePeriod turns the options' date inputs into a concrete window.
func (s *analyticsService) resolvePeriod(opts SalesReportOptions) ReportPeriod {
	if opts.StartDate != nil || opts.EndDate != nil {
		p := ReportPeriod{}
		if opts.StartDate != nil {
			p.StartDate = *opts.StartDate
		}
		p.EndDate = s.now().UTC()
		if opts.EndDate != nil {
			p.EndDate = *opts.EndDate
		}
		return p
	}
	start, end := analytics.FiscalYearRange(opts.FinancialYear, s.now().UTC())
	return ReportPeriod{
		Label:     analytics.FiscalYearLabel(start),
		StartDate: start,
		EndDate:   end,
	}
}

func (s *analyticsService) factFilter(opts SalesReportOptions, period ReportPeriod) analytics.FactFilter {
	start, end := period.StartDate, period.EndDate
	return analytics.FactFilter{
		StartDate:  &start,
		EndDate:    &end,
		CustomerID: opts.CustomerID,
		ProductID:  opts.ProductID,
		Width:      opts.Width,
	}
}

// runReport is the shared pipeline: fetch facts, group, rank, summarize
// over the full set, then truncate.
func (s *analyticsService) runReport(ctx context.Context, opts SalesReportOptions, spec analytics.GroupSpec) (*SalesReport, error) {
	period := s.resolvePeriod(opts)

	facts, err := s.salesRepo.LineFacts(ctx, s.factFilter(opts, period))
	if err != nil {
		return nil, err
	}

	rows := analytics.Aggregate(facts, spec)
	analytics.SortRows(rows, opts.SortBy, opts.SortOrder)
	summary := analytics.Summarize(rows)
	rows = analytics.Limit(rows, opts.Limit)

	return &SalesReport{Period: period, Data: rows, Summary: summary}, nil
}

func (s *analyticsService) WidthDistribution(ctx context.Context, opts WidthDistributionOptions) (*WidthDistributionReport, error) {
	spec := analytics.GroupSpec{Dimension: analytics.DimWidth, TimeBucket: opts.TimeBucket}
	base, err := s.runReport(ctx, opts.SalesReportOptions, spec)
	if err != nil {
		return nil, err
	}
	report := &WidthDistributionReport{SalesReport: *base}

	if opts.CompareWithLastYear {
		cmp, err := s.compareWithPriorYear(ctx, opts.SalesReportOptions, spec, base)
		if err != nil {
			return nil, err
		}
		report.Comparison = cmp
	}

	if opts.IncludeTimeTrend {
		facts, err := s.salesRepo.LineFacts(ctx, s.factFilter(opts.SalesReportOptions, base.Period))
		if err != nil {
			return nil, err
		}
		report.TimeTrend = analytics.BuildTrend(facts, analytics.BucketMonth)
	}

	return report, nil
}

// compareWithPriorYear re-runs the same report over the window shifted
// back one year and computes period-over-period growth.
func (s *analyticsService) compareWithPriorYear(ctx context.Context, opts SalesReportOptions, spec analytics.GroupSpec, base *SalesReport) (*PeriodComparison, error) {
	prev := ReportPeriod{
		StartDate: base.Period.StartDate.AddDate(-1, 0, 0),
		EndDate:   base.Period.EndDate.AddDate(-1, 0, 0),
	}
	if base.Period.Label != "" {
		prev.Label = analytics.FiscalYearLabel(prev.StartDate)
	}

	prevOpts := opts
	prevOpts.StartDate = &prev.StartDate
	prevOpts.EndDate = &prev.EndDate
	facts, err := s.salesRepo.LineFacts(ctx, s.factFilter(prevOpts, prev))
	if err != nil {
		return nil, err
	}
	prevSummary := analytics.Summarize(analytics.Aggregate(facts, spec))

	cmp := &PeriodComparison{PreviousPeriod: prev, PreviousSummary: prevSummary}
	if prevSummary.TotalRevenue != 0 {
		rate := analytics.Round2((base.Summary.TotalRevenue - prevSummary.TotalRevenue) / prevSummary.TotalRevenue * 100)
		cmp.RevenueGrowthPct = &rate
	}
	if prevSummary.TotalQuantity != 0 {
		rate := analytics.Round2((base.Summary.TotalQuantity - prevSummary.TotalQuantity) / prevSummary.TotalQuantity * 100)
		cmp.QuantityGrowthPct = &rate
	}
	return cmp, nil
}

// WidthDistributionMulti runs one width-distribution slice per requested
// range. A malformed range parses to match-all, same as the GET variant.
func (s *analyticsService) WidthDistributionMulti(ctx context.Context, opts SalesReportOptions, widths []string) ([]WidthBucketReport, error) {
	reports := make([]WidthBucketReport, 0, len(widths))
	for _, raw := range widths {
		sliceOpts := opts
		sliceOpts.Width = analytics.ParseWidthFilter(raw)

		report, err := s.runReport(ctx, sliceOpts, analytics.GroupSpec{Dimension: analytics.DimWidth})
		if err != nil {
			return nil, err
		}
		reports = append(reports, WidthBucketReport{
			WidthRange: raw,
			Data:       report.Data,
			Summary:    report.Summary,
		})
	}
	return reports, nil
}

func (s *analyticsService) ProductSales(ctx context.Context, opts SalesReportOptions, groupBy string) (*SalesReport, error) {
	spec := analytics.GroupSpec{Dimension: analytics.DimProduct}
	switch groupBy {
	case "month":
		spec.Dimension = analytics.DimMonth
	case "customer":
		spec.Dimension = analytics.DimCustomer
	}
	return s.runReport(ctx, opts, spec)
}

func (s *analyticsService) CustomerAnalytics(ctx context.Context, opts CustomerAnalyticsOptions) (*SalesReport, error) {
	period := s.resolvePeriod(opts.SalesReportOptions)

	facts, err := s.salesRepo.LineFacts(ctx, s.factFilter(opts.SalesReportOptions, period))
	if err != nil {
		return nil, err
	}

	rows := analytics.Aggregate(facts, analytics.GroupSpec{Dimension: analytics.DimCustomer})

	// Bucket-level filters apply after grouping but before ranking, so
	// the summary reflects the filtered customer set.
	filtered := rows[:0]
	for _, r := range rows {
		if opts.MinQuantity != nil && r.TotalQuantity < *opts.MinQuantity {
			continue
		}
		if opts.MaxQuantity != nil && r.TotalQuantity > *opts.MaxQuantity {
			continue
		}
		if opts.MinPurchaseValue != nil && r.TotalRevenue < *opts.MinPurchaseValue {
			continue
		}
		filtered = append(filtered, r)
	}

	analytics.SortRows(filtered, opts.SortBy, opts.SortOrder)
	summary := analytics.Summarize(filtered)
	filtered = analytics.Limit(filtered, opts.Limit)

	return &SalesReport{Period: period, Data: filtered, Summary: summary}, nil
}

// SalesTrends builds the revenue time series over the trailing window and
// forecasts the next period from the last three.
func (s *analyticsService) SalesTrends(ctx context.Context, months int, bucket analytics.TimeBucket, customerID *uuid.UUID) (*TrendReport, error) {
	if months <= 0 {
		months = 12
	}
	if bucket == analytics.BucketNone {
		bucket = analytics.BucketMonth
	}

	now := s.now().UTC()
	end := now
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)

	facts, err := s.salesRepo.LineFacts(ctx, analytics.FactFilter{
		StartDate:  &start,
		EndDate:    &end,
		CustomerID: customerID,
	})
	if err != nil {
		return nil, err
	}

	points := analytics.BuildTrend(facts, bucket)
	return &TrendReport{
		Period:   ReportPeriod{StartDate: start, EndDate: end},
		Data:     points,
		Forecast: analytics.MovingAverageForecast(points),
	}, nil
}
