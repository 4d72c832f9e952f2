package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// CustomerHandler handles HTTP requests for customers and their vehicles
type CustomerHandler struct {
	service *application.CustomerService
	logger  *logging.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(service *application.CustomerService, logger *logging.Logger) *CustomerHandler {
	return &CustomerHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the customer and vehicle endpoints
func (h *CustomerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/customers", h.CreateCustomer)
	rg.GET("/customers", h.SearchCustomers)
	rg.GET("/customers/:customerId", h.GetCustomer)
	rg.PUT("/customers/:customerId", h.UpdateCustomer)
	rg.DELETE("/customers/:customerId", h.DeleteCustomer)
	rg.GET("/customers/:customerId/vehicles", h.ListCustomerVehicles)

	rg.POST("/vehicles", h.CreateVehicle)
	rg.GET("/vehicles/:vehicleId", h.GetVehicle)
	rg.DELETE("/vehicles/:vehicleId", h.DeleteVehicle)
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateCustomerCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreateCustomer(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetCustomer handles GET /api/v1/customers/:customerId
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// SearchCustomers handles GET /api/v1/customers
func (h *CustomerHandler) SearchCustomers(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "createdAt")
	query := application.SearchCustomersQuery{
		Query:    req.Filter.Search,
		Page:     req.Pagination.Page,
		PageSize: req.Pagination.PageSize,
	}

	result, err := h.service.SearchCustomers(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// UpdateCustomer handles PUT /api/v1/customers/:customerId
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.UpdateCustomerCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.CustomerID = c.Param("customerId")

	result, err := h.service.UpdateCustomer(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// DeleteCustomer handles DELETE /api/v1/customers/:customerId
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.DeleteCustomer(c.Request.Context(), c.Param("customerId")); err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CreateVehicle handles POST /api/v1/vehicles
func (h *CustomerHandler) CreateVehicle(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateVehicleCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreateVehicle(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetVehicle handles GET /api/v1/vehicles/:vehicleId
func (h *CustomerHandler) GetVehicle(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetVehicle(c.Request.Context(), c.Param("vehicleId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListCustomerVehicles handles GET /api/v1/customers/:customerId/vehicles
func (h *CustomerHandler) ListCustomerVehicles(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.ListCustomerVehicles(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// DeleteVehicle handles DELETE /api/v1/vehicles/:vehicleId
func (h *CustomerHandler) DeleteVehicle(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.DeleteVehicle(c.Request.Context(), c.Param("vehicleId")); err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
