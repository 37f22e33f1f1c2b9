package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rollstock/internal/domain"
	"rollstock/internal/handler"
	"rollstock/mocks"
)

func newLedgerHandler() (*handler.LedgerHandler, *mocks.MockLedgerService) {
	mockSvc := new(mocks.MockLedgerService)
	h := handler.NewLedgerHandler(mockSvc)
	return h, mockSvc
}

func TestLedgerHandler_Get(t *testing.T) {
	h, mockSvc := newLedgerHandler()

	customerID := uuid.New()
	mockSvc.On("CustomerLedger", mock.Anything, customerID, "2025-26").Return(&domain.CustomerLedger{
		CustomerID:     customerID,
		CustomerName:   "Apex Films",
		FinancialYear:  "2025-26",
		OpeningBalance: 1400,
		ClosingBalance: 1700,
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/ledger?financialYear=2025-26", nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data domain.CustomerLedger `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Apex Films", resp.Data.CustomerName)
	assert.Equal(t, 1700.0, resp.Data.ClosingBalance)
}

func TestLedgerHandler_Export_Headers(t *testing.T) {
	h, mockSvc := newLedgerHandler()

	customerID := uuid.New()
	mockSvc.On("ExportXLSX", mock.Anything, customerID, "").
		Return([]byte("PK workbook bytes"), "ledger_Apex_2025-26.xlsx", nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/ledger/export", nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="ledger_Apex_2025-26.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "PK workbook bytes", w.Body.String())
}

func TestLedgerHandler_Get_UnknownCustomer(t *testing.T) {
	h, mockSvc := newLedgerHandler()

	customerID := uuid.New()
	mockSvc.On("CustomerLedger", mock.Anything, customerID, "").Return(nil, domain.ErrCustomerNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID.String()+"/ledger", nil)
	c.Params = gin.Params{{Key: "id", Value: customerID.String()}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
