package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rollstock/internal/analytics"
	"rollstock/internal/service"
)

// AnalyticsHandler handles the sales report endpoints. Report query
// parameters are parsed leniently: malformed input falls back to
// defaults instead of rejecting the request.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// WidthDistribution handles GET /api/v1/analytics/sales/width-distribution
// @Summary Sales grouped by roll width
// @Tags analytics
// @Produce json
// @Param financialYear query string false "Fiscal year: current, previous, or YYYY-YY" default(current)
// @Param startDate query string false "Start date (YYYY-MM-DD), overrides financialYear"
// @Param endDate query string false "End date (YYYY-MM-DD), overrides financialYear"
// @Param customerId query string false "Filter by customer UUID"
// @Param productId query string false "Filter by product UUID"
// @Param widthRange query string false "Exact width or inclusive min-max range"
// @Param groupBy query string false "Extra time bucket" Enums(month, quarter, week, year)
// @Param sortBy query string false "Ranking metric" Enums(quantity, revenue, width, profit) default(revenue)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Param limit query int false "Truncate data rows; summary stays over the full set"
// @Param compareWithLastYear query bool false "Add a same-window-last-year comparison"
// @Param includeTimeTrend query bool false "Add a monthly revenue trend block"
// @Success 200 {object} APIResponse{data=service.WidthDistributionReport}
// @Failure 500 {object} APIResponse
// @Router /analytics/sales/width-distribution [get]
func (h *AnalyticsHandler) WidthDistribution(c *gin.Context) {
	opts, echo := parseSalesOptions(c)

	report, err := h.analyticsService.WidthDistribution(c.Request.Context(), service.WidthDistributionOptions{
		SalesReportOptions:  opts,
		CompareWithLastYear: analytics.LenientBool(c.Query("compareWithLastYear")),
		IncludeTimeTrend:    analytics.LenientBool(c.Query("includeTimeTrend")),
	})
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondReport(c, report, report.Summary, echo)
}

// MultiWidthRequest asks for one width-distribution slice per range.
type MultiWidthRequest struct {
	Widths        []string `json:"widths" binding:"required"`
	FinancialYear string   `json:"financial_year"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	CustomerID    string   `json:"customer_id"`
	ProductID     string   `json:"product_id"`
}

// WidthDistributionMulti handles POST /api/v1/analytics/sales/width-distribution
// @Summary Width distribution for several width ranges at once
// @Tags analytics
// @Accept json
// @Produce json
// @Param request body MultiWidthRequest true "Width ranges and shared filters"
// @Success 200 {object} APIResponse{data=[]service.WidthBucketReport}
// @Failure 400 {object} APIResponse
// @Failure 500 {object} APIResponse
// @Router /analytics/sales/width-distribution [post]
func (h *AnalyticsHandler) WidthDistributionMulti(c *gin.Context) {
	var req MultiWidthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	opts := service.SalesReportOptions{
		StartDate:     lenientDate(req.StartDate),
		EndDate:       lenientDate(req.EndDate),
		FinancialYear: req.FinancialYear,
		CustomerID:    lenientUUID(req.CustomerID),
		ProductID:     lenientUUID(req.ProductID),
	}

	reports, err := h.analyticsService.WidthDistributionMulti(c.Request.Context(), opts, req.Widths)
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondOK(c, reports)
}

// ProductSales handles GET /api/v1/analytics/sales/products
// @Summary Sales grouped by product, month, or customer
// @Tags analytics
// @Produce json
// @Param groupBy query string false "Grouping dimension" Enums(product, month, customer) default(product)
// @Param financialYear query string false "Fiscal year: current, previous, or YYYY-YY" default(current)
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param customerId query string false "Filter by customer UUID"
// @Param productId query string false "Filter by product UUID"
// @Param widthRange query string false "Exact width or inclusive min-max range"
// @Param sortBy query string false "Ranking metric" Enums(quantity, revenue, width, profit) default(revenue)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Param limit query int false "Truncate data rows; summary stays over the full set"
// @Success 200 {object} APIResponse{data=service.SalesReport}
// @Failure 500 {object} APIResponse
// @Router /analytics/sales/products [get]
func (h *AnalyticsHandler) ProductSales(c *gin.Context) {
	opts, echo := parseSalesOptions(c)
	groupBy := c.Query("groupBy")
	echo.GroupBy = groupBy

	report, err := h.analyticsService.ProductSales(c.Request.Context(), opts, groupBy)
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondReport(c, report, report.Summary, echo)
}

// CustomerAnalytics handles GET /api/v1/analytics/customers
// @Summary Sales grouped by customer with bucket-level filters
// @Tags analytics
// @Produce json
// @Param financialYear query string false "Fiscal year: current, previous, or YYYY-YY" default(current)
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param widthRange query string false "Exact width or inclusive min-max range"
// @Param minQuantity query number false "Keep customers with at least this total quantity"
// @Param maxQuantity query number false "Keep customers with at most this total quantity"
// @Param minPurchaseValue query number false "Keep customers with at least this total revenue"
// @Param sortBy query string false "Ranking metric" Enums(quantity, revenue, width, profit) default(revenue)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Param limit query int false "Truncate data rows; summary stays over the full set"
// @Success 200 {object} APIResponse{data=service.SalesReport}
// @Failure 500 {object} APIResponse
// @Router /analytics/customers [get]
func (h *AnalyticsHandler) CustomerAnalytics(c *gin.Context) {
	opts, echo := parseSalesOptions(c)

	report, err := h.analyticsService.CustomerAnalytics(c.Request.Context(), service.CustomerAnalyticsOptions{
		SalesReportOptions: opts,
		MinQuantity:        analytics.LenientFloatPtr(c.Query("minQuantity")),
		MaxQuantity:        analytics.LenientFloatPtr(c.Query("maxQuantity")),
		MinPurchaseValue:   analytics.LenientFloatPtr(c.Query("minPurchaseValue")),
	})
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondReport(c, report, report.Summary, echo)
}

// SalesTrends handles GET /api/v1/analytics/sales/trends
// @Summary Revenue time series with a moving-average forecast
// @Tags analytics
// @Produce json
// @Param months query int false "Trailing window in months" default(12)
// @Param groupBy query string false "Bucket granularity" Enums(month, week) default(month)
// @Param customerId query string false "Filter by customer UUID"
// @Success 200 {object} APIResponse{data=service.TrendReport}
// @Failure 500 {object} APIResponse
// @Router /analytics/sales/trends [get]
func (h *AnalyticsHandler) SalesTrends(c *gin.Context) {
	months := analytics.LenientInt(c.Query("months"), 12)
	bucket := analytics.ParseTimeBucket(c.Query("groupBy"))
	customerID := lenientUUID(c.Query("customerId"))

	report, err := h.analyticsService.SalesTrends(c.Request.Context(), months, bucket, customerID)
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondOK(c, report)
}
