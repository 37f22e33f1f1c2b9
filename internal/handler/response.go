package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"rollstock/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Summary interface{} `json:"summary,omitempty"`
	Filters interface{} `json:"filters,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondReport sends a 200 report response: data rows, the pre-limit
// summary, and an echo of the filters the lenient parser resolved.
func RespondReport(c *gin.Context, data, summary, filters interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Summary: summary,
		Filters: filters,
	})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		return http.StatusNotFound, "CUSTOMER_NOT_FOUND", "customer not found"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "PRODUCT_NOT_FOUND", "product not found"
	case errors.Is(err, domain.ErrInvoiceNotFound):
		return http.StatusNotFound, "INVOICE_NOT_FOUND", "invoice not found"
	case errors.Is(err, domain.ErrOutstandingNotFound):
		return http.StatusNotFound, "OUTSTANDING_NOT_FOUND", "opening outstanding not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "VALIDATION_ERROR", err.Error()
	case errors.Is(err, domain.ErrInvalidPaymentAmount):
		return http.StatusBadRequest, "INVALID_PAYMENT_AMOUNT", "payment amount must be greater than zero"
	case errors.Is(err, domain.ErrInvalidAdjustedAmount):
		return http.StatusBadRequest, "INVALID_ADJUSTED_AMOUNT", "adjusted amount cannot be negative"
	case errors.Is(err, domain.ErrDuplicateOutstanding):
		return http.StatusBadRequest, "DUPLICATE_OUTSTANDING", "opening outstanding already recorded for this invoice"
	case errors.Is(err, domain.ErrArchivedInvoiceReadOnly):
		return http.StatusBadRequest, "ARCHIVED_INVOICE_READ_ONLY", "archived invoices are read-only"
	case errors.Is(err, domain.ErrInvoiceAlreadyArchived):
		return http.StatusConflict, "INVOICE_ALREADY_ARCHIVED", "invoice is already archived"
	case errors.Is(err, domain.ErrDuplicateInvoiceNumber):
		return http.StatusConflict, "DUPLICATE_INVOICE_NUMBER", "invoice number already exists"
	case errors.Is(err, domain.ErrDuplicateCustomer):
		return http.StatusConflict, "DUPLICATE_CUSTOMER", "customer name or GSTIN already exists"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("internal error")
	}
	RespondError(c, status, code, msg)
}

// HandleReportError is HandleError for the report, reconciliation, and
// ledger endpoints. A failed report query surfaces the underlying error
// message in the 500 body instead of the generic one; domain errors map
// the same as everywhere else.
func HandleReportError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		log.Error().
			Str("request_id", c.GetString("request_id")).
			Err(err).
			Msg("report failed")
		msg = err.Error()
	}
	RespondError(c, status, code, msg)
}
