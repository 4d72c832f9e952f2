package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// InventoryHandler handles HTTP requests for parts and suppliers
type InventoryHandler struct {
	service *application.InventoryService
	logger  *logging.Logger
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *application.InventoryService, logger *logging.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the parts and supplier endpoints
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parts", h.CreatePart)
	rg.GET("/parts", h.ListParts)
	rg.GET("/parts/low-stock", h.ListLowStockParts)
	rg.GET("/parts/:partId", h.GetPart)
	rg.PUT("/parts/:partId", h.UpdatePart)
	rg.POST("/parts/:partId/adjust-stock", h.AdjustStock)
	rg.DELETE("/parts/:partId", h.DeletePart)

	rg.POST("/suppliers", h.CreateSupplier)
	rg.GET("/suppliers", h.ListSuppliers)
	rg.GET("/suppliers/:supplierId", h.GetSupplier)
	rg.DELETE("/suppliers/:supplierId", h.DeleteSupplier)
}

// CreatePart handles POST /api/v1/parts
func (h *InventoryHandler) CreatePart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreatePartCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreatePart(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetPart handles GET /api/v1/parts/:partId
func (h *InventoryHandler) GetPart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetPart(c.Request.Context(), c.Param("partId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListParts handles GET /api/v1/parts
func (h *InventoryHandler) ListParts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "name")
	query := application.ListPartsQuery{
		Search:   req.Filter.Search,
		Page:     req.Pagination.Page,
		PageSize: req.Pagination.PageSize,
	}

	result, err := h.service.ListParts(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListLowStockParts handles GET /api/v1/parts/low-stock
func (h *InventoryHandler) ListLowStockParts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ListLowStockParts(c.Request.Context())
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// UpdatePart handles PUT /api/v1/parts/:partId
func (h *InventoryHandler) UpdatePart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.UpdatePartCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.PartID = c.Param("partId")

	result, err := h.service.UpdatePart(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// AdjustStock handles POST /api/v1/parts/:partId/adjust-stock
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.AdjustStockCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.PartID = c.Param("partId")

	result, err := h.service.AdjustStock(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// DeletePart handles DELETE /api/v1/parts/:partId
func (h *InventoryHandler) DeletePart(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.DeletePart(c.Request.Context(), c.Param("partId")); err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateSupplier handles POST /api/v1/suppliers
func (h *InventoryHandler) CreateSupplier(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateSupplierCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreateSupplier(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetSupplier handles GET /api/v1/suppliers/:supplierId
func (h *InventoryHandler) GetSupplier(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetSupplier(c.Request.Context(), c.Param("supplierId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *InventoryHandler) ListSuppliers(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "name")
	result, err := h.service.ListSuppliers(c.Request.Context(), req.Pagination.Page, req.Pagination.PageSize)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteSupplier handles DELETE /api/v1/suppliers/:supplierId
func (h *InventoryHandler) DeleteSupplier(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.DeleteSupplier(c.Request.Context(), c.Param("supplierId")); err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
