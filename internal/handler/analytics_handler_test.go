package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollstock/internal/analytics"
	"rollstock/internal/handler"
	"rollstock/internal/service"
	"rollstock/mocks"
)

func newAnalyticsHandler() (*handler.AnalyticsHandler, *mocks.MockAnalyticsService) {
	mockSvc := new(mocks.MockAnalyticsService)
	h := handler.NewAnalyticsHandler(mockSvc)
	return h, mockSvc
}

func TestAnalyticsHandler_WidthDistribution(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	report := &service.WidthDistributionReport{
		SalesReport: service.SalesReport{
			Period: service.ReportPeriod{Label: "2025-26"},
			Data: []analytics.GroupRow{
				{Key: "100", Label: "100", TotalRevenue: 1800, TotalQuantity: 9},
			},
			Summary: analytics.Summary{GroupCount: 1, TotalRevenue: 1800, TotalQuantity: 9},
		},
	}
	mockSvc.On("WidthDistribution", mock.Anything, mock.MatchedBy(func(opts service.WidthDistributionOptions) bool {
		return opts.CompareWithLastYear && opts.FinancialYear == "current"
	})).Return(report, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/analytics/sales/width-distribution?financialYear=current&compareWithLastYear=true", nil)

	h.WidthDistribution(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                            `json:"success"`
		Data    service.WidthDistributionReport `json:"data"`
		Summary analytics.Summary               `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "2025-26", resp.Data.Period.Label)
	assert.Equal(t, 1800.0, resp.Summary.TotalRevenue)
	mockSvc.AssertExpectations(t)
}

func TestAnalyticsHandler_WidthDistribution_MalformedParamsFallBack(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	// A bad date, a bad UUID, and a bad limit all degrade to defaults
	// rather than rejecting the request.
	mockSvc.On("WidthDistribution", mock.Anything, mock.MatchedBy(func(opts service.WidthDistributionOptions) bool {
		return opts.StartDate == nil && opts.CustomerID == nil && opts.Limit == 0
	})).Return(&service.WidthDistributionReport{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet,
		"/api/v1/analytics/sales/width-distribution?startDate=banana&customerId=nope&limit=many", nil)

	h.WidthDistribution(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestAnalyticsHandler_WidthDistribution_SurfacesQueryFailure(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	mockSvc.On("WidthDistribution", mock.Anything, mock.AnythingOfType("service.WidthDistributionOptions")).
		Return(nil, errors.New("pq: canceling statement due to statement timeout"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analytics/sales/width-distribution", nil)

	h.WidthDistribution(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error.Code)
	// Report failures carry the underlying message, not the generic one.
	assert.Equal(t, "pq: canceling statement due to statement timeout", resp.Error.Message)
}

func TestAnalyticsHandler_WidthDistributionMulti(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	mockSvc.On("WidthDistributionMulti", mock.Anything, mock.AnythingOfType("service.SalesReportOptions"), []string{"100-150", "200-250"}).
		Return([]service.WidthBucketReport{
			{WidthRange: "100-150"},
			{WidthRange: "200-250"},
		}, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"widths":         []string{"100-150", "200-250"},
		"financial_year": "2025-26",
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analytics/sales/width-distribution", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.WidthDistributionMulti(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []service.WidthBucketReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "100-150", resp.Data[0].WidthRange)
}

func TestAnalyticsHandler_WidthDistributionMulti_MissingWidths(t *testing.T) {
	h, _ := newAnalyticsHandler()

	body, _ := json.Marshal(map[string]interface{}{"financial_year": "2025-26"})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/analytics/sales/width-distribution", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.WidthDistributionMulti(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyticsHandler_ProductSales_GroupByEcho(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	mockSvc.On("ProductSales", mock.Anything, mock.AnythingOfType("service.SalesReportOptions"), "month").
		Return(&service.SalesReport{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analytics/sales/products?groupBy=month", nil)

	h.ProductSales(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Filters handler.ReportFilters `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "month", resp.Filters.GroupBy)
}

func TestAnalyticsHandler_SalesTrends(t *testing.T) {
	h, mockSvc := newAnalyticsHandler()

	report := &service.TrendReport{
		Data: []analytics.TrendPoint{
			{Period: "2025-06", TotalRevenue: 300},
		},
		Forecast: &analytics.Forecast{NextPeriodRevenue: 300, Method: "3-period moving average", Confidence: "Medium"},
	}
	mockSvc.On("SalesTrends", mock.Anything, 6, analytics.BucketMonth, (*uuid.UUID)(nil)).Return(report, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/analytics/sales/trends?months=6&groupBy=month", nil)

	h.SalesTrends(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data service.TrendReport `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Data.Forecast)
	assert.Equal(t, 300.0, resp.Data.Forecast.NextPeriodRevenue)
}
