package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/domain"
	"rollstock/internal/service"
)

// InvoiceHandler handles invoice, payment, and archiving endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateInvoiceRequest is the payload for creating an invoice. The grand
// total is computed server-side from the amount fields.
type CreateInvoiceRequest struct {
	InvoiceNumber string            `json:"invoice_number" binding:"required"`
	CustomerID    uuid.UUID         `json:"customer_id" binding:"required"`
	InvoiceDate   time.Time         `json:"invoice_date"`
	LineItems     []domain.LineItem `json:"line_items" binding:"required"`
	TotalAmount   float64           `json:"total_amount"`
	CGST          float64           `json:"cgst"`
	SGST          float64           `json:"sgst"`
	IGST          float64           `json:"igst"`
	OtherCharges  float64           `json:"other_charges"`
	PaidAmount    float64           `json:"paid_amount"`
}

// Create handles POST /api/v1/invoices
// @Summary Create an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse "Customer not found"
// @Failure 409 {object} APIResponse "Invoice number already exists"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv := &domain.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		CustomerID:    req.CustomerID,
		InvoiceDate:   req.InvoiceDate,
		LineItems:     req.LineItems,
		TotalAmount:   req.TotalAmount,
		CGST:          req.CGST,
		SGST:          req.SGST,
		IGST:          req.IGST,
		OtherCharges:  req.OtherCharges,
		PaidAmount:    req.PaidAmount,
	}
	if err := h.invoiceService.Create(c.Request.Context(), inv); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List live invoices
// @Tags invoices
// @Produce json
// @Param customerId query string false "Filter by customer UUID"
// @Param paymentStatus query string false "Filter by status" Enums(unpaid, partial, paid, overpaid)
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Invoice,meta=PagMeta}
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	filter := domain.InvoiceListFilter{
		CustomerID: lenientUUID(c.Query("customerId")),
		StartDate:  lenientDate(c.Query("startDate")),
		EndDate:    lenientDate(c.Query("endDate")),
		Offset:     offset,
		Limit:      limit,
	}
	if s := c.Query("paymentStatus"); s != "" {
		status := domain.PaymentStatus(s)
		filter.PaymentStatus = &status
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Description Resolves from the live store first, then the archive.
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, archived, err := h.invoiceService.FindAnywhere(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"invoice": inv, "archived": archived})
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete a live invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}

// AllocatePayment handles POST /api/v1/invoices/:id/payments
// @Summary Record a payment against a live invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.PaymentInput true "Payment details"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse "Invalid amount or archived invoice"
// @Failure 404 {object} APIResponse
// @Router /invoices/{id}/payments [post]
func (h *InvoiceHandler) AllocatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var in service.PaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.AllocatePayment(c.Request.Context(), id, in)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// ListPayments handles GET /api/v1/invoices/:id/payments
// @Summary List payments recorded against an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.Payment}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /invoices/{id}/payments [get]
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	payments, err := h.invoiceService.ListPayments(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

// Archive handles POST /api/v1/invoices/:id/archive
// @Summary Move an invoice into the archived store
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Invoice}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse "Already archived"
// @Router /invoices/{id}/archive [post]
func (h *InvoiceHandler) Archive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.Archive(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}
