package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"rollstock/internal/domain"
	"rollstock/internal/handler"
	"rollstock/internal/service"
	"rollstock/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newInvoiceHandler() (*handler.InvoiceHandler, *mocks.MockInvoiceService) {
	mockSvc := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockSvc)
	return h, mockSvc
}

func TestInvoiceHandler_Create_Success(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	mockSvc.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice")).Return(nil)

	body, _ := json.Marshal(map[string]interface{}{
		"invoice_number": "INV-100",
		"customer_id":    uuid.New().String(),
		"line_items": []map[string]interface{}{
			{"width": 100, "quantity": 5, "unit_price": 200, "total_price": 1000},
		},
		"total_amount": 1000,
		"cgst":         90,
		"sgst":         90,
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestInvoiceHandler_Create_MissingNumber(t *testing.T) {
	h, _ := newInvoiceHandler()

	body, _ := json.Marshal(map[string]interface{}{
		"customer_id": uuid.New().String(),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_GetByID_IncludesArchivedFlag(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("FindAnywhere", mock.Anything, id).Return(&domain.Invoice{ID: id}, true, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Archived bool `json:"archived"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Archived)
}

func TestInvoiceHandler_GetByID_InvalidUUID(t *testing.T) {
	h, _ := newInvoiceHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_AllocatePayment_InvalidAmount(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("AllocatePayment", mock.Anything, id, mock.AnythingOfType("service.PaymentInput")).
		Return(nil, domain.ErrInvalidPaymentAmount)

	body, _ := json.Marshal(map[string]interface{}{"amount": -10})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+id.String()+"/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.AllocatePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_AllocatePayment_ArchivedReadOnly(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("AllocatePayment", mock.Anything, id, mock.AnythingOfType("service.PaymentInput")).
		Return(nil, domain.ErrArchivedInvoiceReadOnly)

	body, _ := json.Marshal(service.PaymentInput{Amount: 100})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+id.String()+"/payments", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.AllocatePayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ARCHIVED_INVOICE_READ_ONLY", resp.Error.Code)
}

func TestInvoiceHandler_Archive_Conflict(t *testing.T) {
	h, mockSvc := newInvoiceHandler()

	id := uuid.New()
	mockSvc.On("Archive", mock.Anything, id).Return(nil, domain.ErrInvoiceAlreadyArchived)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/invoices/"+id.String()+"/archive", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Archive(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}
