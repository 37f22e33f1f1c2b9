package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/analytics"
	"rollstock/internal/service"
)

// ReportFilters echoes back what the lenient query parser resolved, so
// callers can see how malformed input was interpreted.
type ReportFilters struct {
	FinancialYear string `json:"financial_year,omitempty"`
	StartDate     string `json:"start_date,omitempty"`
	EndDate       string `json:"end_date,omitempty"`
	CustomerID    string `json:"customer_id,omitempty"`
	ProductID     string `json:"product_id,omitempty"`
	WidthRange    string `json:"width_range,omitempty"`
	GroupBy       string `json:"group_by,omitempty"`
	SortBy        string `json:"sort_by"`
	SortOrder     string `json:"sort_order"`
	Limit         int    `json:"limit,omitempty"`
}

// lenientDate parses YYYY-MM-DD; malformed input yields nil, in line
// with the report parameter policy.
func lenientDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// lenientUUID parses a UUID; malformed input yields nil (no filter).
func lenientUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

// parseSalesOptions extracts the shared report parameters. Every
// parameter is lenient: bad input falls back to its default instead of
// failing the request.
func parseSalesOptions(c *gin.Context) (service.SalesReportOptions, ReportFilters) {
	opts := service.SalesReportOptions{
		StartDate:     lenientDate(c.Query("startDate")),
		EndDate:       lenientDate(c.Query("endDate")),
		FinancialYear: c.Query("financialYear"),
		CustomerID:    lenientUUID(c.Query("customerId")),
		ProductID:     lenientUUID(c.Query("productId")),
		Width:         analytics.ParseWidthFilter(c.Query("widthRange")),
		TimeBucket:    analytics.ParseTimeBucket(c.Query("groupBy")),
		SortBy:        analytics.ParseSortMetric(c.Query("sortBy")),
		SortOrder:     analytics.ParseSortOrder(c.Query("sortOrder")),
		Limit:         analytics.LenientInt(c.Query("limit"), 0),
	}

	echo := ReportFilters{
		FinancialYear: opts.FinancialYear,
		WidthRange:    opts.Width.String(),
		GroupBy:       string(opts.TimeBucket),
		SortBy:        string(opts.SortBy),
		SortOrder:     string(opts.SortOrder),
		Limit:         opts.Limit,
	}
	if opts.StartDate != nil {
		echo.StartDate = opts.StartDate.Format("2006-01-02")
	}
	if opts.EndDate != nil {
		echo.EndDate = opts.EndDate.Format("2006-01-02")
	}
	if opts.CustomerID != nil {
		echo.CustomerID = opts.CustomerID.String()
	}
	if opts.ProductID != nil {
		echo.ProductID = opts.ProductID.String()
	}
	return opts, echo
}

// parsePagination reads offset/limit with the standard bounds.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset = analytics.LenientInt(c.Query("offset"), 0)
	limit = analytics.LenientInt(c.Query("limit"), 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
