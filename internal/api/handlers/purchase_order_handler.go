package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// PurchaseOrderHandler handles HTTP requests for purchase orders
type PurchaseOrderHandler struct {
	service *application.PurchaseOrderService
	logger  *logging.Logger
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler
func NewPurchaseOrderHandler(service *application.PurchaseOrderService, logger *logging.Logger) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the purchase order endpoints
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase-orders", h.CreatePurchaseOrder)
	rg.GET("/purchase-orders", h.ListPurchaseOrders)
	rg.GET("/purchase-orders/:purchaseOrderId", h.GetPurchaseOrder)
	rg.PUT("/purchase-orders/:purchaseOrderId/order", h.MarkOrdered)
	rg.PUT("/purchase-orders/:purchaseOrderId/receive", h.ReceivePurchaseOrder)
	rg.PUT("/purchase-orders/:purchaseOrderId/cancel", h.CancelPurchaseOrder)
}

// CreatePurchaseOrder handles POST /api/v1/purchase-orders
func (h *PurchaseOrderHandler) CreatePurchaseOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreatePurchaseOrderCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreatePurchaseOrder(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetPurchaseOrder handles GET /api/v1/purchase-orders/:purchaseOrderId
func (h *PurchaseOrderHandler) GetPurchaseOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetPurchaseOrder(c.Request.Context(), c.Param("purchaseOrderId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListPurchaseOrders handles GET /api/v1/purchase-orders
func (h *PurchaseOrderHandler) ListPurchaseOrders(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "createdAt")
	query := application.ListPurchaseOrdersQuery{
		Status:     req.Filter.Status,
		SupplierID: c.Query("supplierId"),
		Page:       req.Pagination.Page,
		PageSize:   req.Pagination.PageSize,
	}

	result, err := h.service.ListPurchaseOrders(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkOrdered handles PUT /api/v1/purchase-orders/:purchaseOrderId/order
func (h *PurchaseOrderHandler) MarkOrdered(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.MarkOrdered(c.Request.Context(), c.Param("purchaseOrderId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ReceivePurchaseOrder handles PUT /api/v1/purchase-orders/:purchaseOrderId/receive
func (h *PurchaseOrderHandler) ReceivePurchaseOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ReceivePurchaseOrder(c.Request.Context(), c.Param("purchaseOrderId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// CancelPurchaseOrder handles PUT /api/v1/purchase-orders/:purchaseOrderId/cancel
func (h *PurchaseOrderHandler) CancelPurchaseOrder(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.CancelPurchaseOrder(c.Request.Context(), c.Param("purchaseOrderId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
