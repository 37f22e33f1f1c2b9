package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/service"
)

// LedgerHandler handles customer ledger endpoints.
type LedgerHandler struct {
	ledgerService service.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerService service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// Get handles GET /api/v1/customers/:id/ledger
// @Summary Fiscal-year ledger for a customer
// @Description Opening balance, dated invoice/payment entries with a running balance, and the closing balance.
// @Tags ledger
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param financialYear query string false "Fiscal year: current, previous, or YYYY-YY" default(current)
// @Success 200 {object} APIResponse{data=domain.CustomerLedger}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id}/ledger [get]
func (h *LedgerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	ledger, err := h.ledgerService.CustomerLedger(c.Request.Context(), id, c.Query("financialYear"))
	if err != nil {
		HandleReportError(c, err)
		return
	}

	RespondOK(c, ledger)
}

// Export handles GET /api/v1/customers/:id/ledger/export
// @Summary Download the fiscal-year ledger as an Excel workbook
// @Tags ledger
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Customer ID (UUID)"
// @Param financialYear query string false "Fiscal year: current, previous, or YYYY-YY" default(current)
// @Success 200 {file} binary
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id}/ledger/export [get]
func (h *LedgerHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	data, filename, err := h.ledgerService.ExportXLSX(c.Request.Context(), id, c.Query("financialYear"))
	if err != nil {
		HandleReportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
