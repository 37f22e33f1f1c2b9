package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rollstock/internal/domain"
	"rollstock/internal/service"
)

// ProductHandler handles product management endpoints.
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ProductRequest is the payload for creating or updating a product.
type ProductRequest struct {
	Name        string `json:"name" binding:"required"`
	HSNCode     string `json:"hsn_code"`
	Description string `json:"description"`
}

// Create handles POST /api/v1/products
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body ProductRequest true "Product details"
// @Success 201 {object} APIResponse{data=domain.Product}
// @Failure 400 {object} APIResponse
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		Description: req.Description,
	}
	if err := h.productService.Create(c.Request.Context(), product); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, product)
}

// List handles GET /api/v1/products
// @Summary List products
// @Tags products
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit (max 100)" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Product,meta=PagMeta}
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	products, total, err := h.productService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, products, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Product}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Param request body ProductRequest true "Fields to update"
// @Success 200 {object} APIResponse{data=domain.Product}
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	product := &domain.Product{
		ID:          id,
		Name:        req.Name,
		HSNCode:     req.HSNCode,
		Description: req.Description,
	}
	if err := h.productService.Update(c.Request.Context(), product); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, product)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID (UUID)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": true})
}
