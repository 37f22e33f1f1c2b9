package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/domain"
	"rollstock/internal/service"
)

// CustomerHandler handles customer management endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomerRequest is the payload for creating a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	GSTIN   string `json:"gstin" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Create handles POST /api/v1/customers
// @Summary Create a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param request body CreateCustomerRequest true "Customer details"
// @Success 201 {object} APIResponse{data=domain.Customer}
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse "Name or GSTIN already exists"
// @Router /customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer := &domain.Customer{
		Name:    req.Name,
		GSTIN:   req.GSTIN,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := h.customerService.Create(c.Request.Context(), customer); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, customer)
}

// List handles GET /api/v1/customers
// @Summary List customers
// @Tags customers
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Customer,meta=PagMeta}
// @Router /customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	customers, total, err := h.customerService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
// @Summary Get customer by ID
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Customer}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id} [get]
func (h *CustomerHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// UpdateCustomerRequest is the payload for updating a customer.
type UpdateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	GSTIN   string `json:"gstin" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Update handles PUT /api/v1/customers/:id
// @Summary Update a customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Param request body UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.Customer}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id} [put]
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer := &domain.Customer{
		ID:      id,
		Name:    req.Name,
		GSTIN:   req.GSTIN,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	}
	if err := h.customerService.Update(c.Request.Context(), customer); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
// @Summary Delete a customer
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID (UUID)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
