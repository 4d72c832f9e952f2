package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// BillingHandler handles HTTP requests for bills
type BillingHandler struct {
	service *application.BillingService
	logger  *logging.Logger
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(service *application.BillingService, logger *logging.Logger) *BillingHandler {
	return &BillingHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the billing endpoints
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bills", h.GenerateBill)
	rg.GET("/bills", h.ListBills)
	rg.GET("/bills/:billId", h.GetBill)
	rg.GET("/bills/:billId/invoice", h.GetInvoice)
	rg.PUT("/bills/:billId/pay", h.MarkBillPaid)
}

// GenerateBill handles POST /api/v1/bills
func (h *BillingHandler) GenerateBill(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.GenerateBillCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.GenerateBill(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetBill handles GET /api/v1/bills/:billId
func (h *BillingHandler) GetBill(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetBill(c.Request.Context(), c.Param("billId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetInvoice handles GET /api/v1/bills/:billId/invoice
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	html, err := h.service.InvoiceHTML(c.Request.Context(), c.Param("billId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// ListBills handles GET /api/v1/bills
func (h *BillingHandler) ListBills(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "billDate")
	query := application.ListBillsQuery{
		CustomerID:    c.Query("customerId"),
		PaymentStatus: req.Filter.Status,
		Page:          req.Pagination.Page,
		PageSize:      req.Pagination.PageSize,
	}

	result, err := h.service.ListBills(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkBillPaid handles PUT /api/v1/bills/:billId/pay
func (h *BillingHandler) MarkBillPaid(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.MarkBillPaidCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.BillID = c.Param("billId")

	result, err := h.service.MarkBillPaid(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
