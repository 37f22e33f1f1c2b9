package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/analytics"
	"rollstock/internal/service"
)

// OutstandingHandler handles opening-outstanding endpoints and the
// per-customer pending-invoice reconciliation view.
type OutstandingHandler struct {
	outstandingService service.OutstandingService
}

// NewOutstandingHandler creates a new OutstandingHandler.
func NewOutstandingHandler(outstandingService service.OutstandingService) *OutstandingHandler {
	return &OutstandingHandler{outstandingService: outstandingService}
}

// Create handles POST /api/v1/opening-outstandings
// @Summary Record an opening outstanding against an invoice
// @Description The invoice is resolved from the live store first, then the archive.
// @Tags outstandings
// @Accept json
// @Produce json
// @Param request body service.CreateOutstandingInput true "Outstanding details"
// @Success 201 {object} APIResponse{data=domain.OpeningOutstanding}
// @Failure 400 {object} APIResponse "Validation error or duplicate record"
// @Failure 404 {object} APIResponse "Invoice not found in either store"
// @Router /opening-outstandings [post]
func (h *OutstandingHandler) Create(c *gin.Context) {
	var in service.CreateOutstandingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	o, err := h.outstandingService.Create(c.Request.Context(), in)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, o)
}

// List handles GET /api/v1/opening-outstandings
// @Summary List opening outstandings
// @Tags outstandings
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.OpeningOutstanding,meta=PagMeta}
// @Router /opening-outstandings [get]
func (h *OutstandingHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	outstandings, total, err := h.outstandingService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, outstandings, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/opening-outstandings/:id
// @Summary Get opening outstanding by ID
// @Tags outstandings
// @Produce json
// @Param id path string true "Outstanding ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.OpeningOutstanding}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /opening-outstandings/{id} [get]
func (h *OutstandingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid outstanding ID")
		return
	}

	o, err := h.outstandingService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, o)
}

// UpdateAdjustedRequest carries the new adjusted amount.
type UpdateAdjustedRequest struct {
	AdjustedAmount float64 `json:"adjusted_amount"`
}

// UpdateAdjusted handles PUT /api/v1/opening-outstandings/:id
// @Summary Update the adjusted amount on an opening outstanding
// @Tags outstandings
// @Accept json
// @Produce json
// @Param id path string true "Outstanding ID (UUID)"
// @Param request body UpdateAdjustedRequest true "New adjusted amount"
// @Success 200 {object} APIResponse{data=domain.OpeningOutstanding}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /opening-outstandings/{id} [put]
func (h *OutstandingHandler) UpdateAdjusted(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid outstanding ID")
		return
	}

	var req UpdateAdjustedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	o, err := h.outstandingService.UpdateAdjusted(c.Request.Context(), id, req.AdjustedAmount)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, o)
}

// ListByCustomer handles GET /api/v1/customers/:id/opening-outstandings
// @Summary List a customer's opening outstandings
// @Tags outstandings
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.OpeningOutstanding}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id}/opening-outstandings [get]
func (h *OutstandingHandler) ListByCustomer(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	outstandings, err := h.outstandingService.ListByCustomer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, outstandings)
}

// PendingInvoices handles GET /api/v1/customers/:id/pending-invoices
// @Summary Reconciled pending view for a customer
// @Description Merges live pending invoices with opening-outstanding balances. The amount filter applies to each source before merging.
// @Tags outstandings
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param minAmount query number false "Minimum pending amount (inclusive)"
// @Param maxAmount query number false "Maximum pending amount (inclusive)"
// @Success 200 {object} APIResponse{data=[]domain.PendingInvoice,summary=domain.PendingSummary}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id}/pending-invoices [get]
func (h *OutstandingHandler) PendingInvoices(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	amountRange := analytics.AmountRange{
		Min: analytics.LenientFloatPtr(c.Query("minAmount")),
		Max: analytics.LenientFloatPtr(c.Query("maxAmount")),
	}

	pending, summary, err := h.outstandingService.PendingInvoices(c.Request.Context(), id, amountRange)
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondReport(c, pending, summary, gin.H{
		"min_amount": c.Query("minAmount"),
		"max_amount": c.Query("maxAmount"),
	})
}
