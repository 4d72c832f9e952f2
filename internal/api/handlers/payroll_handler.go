package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// PayrollHandler handles HTTP requests for employees and payroll
type PayrollHandler struct {
	service *application.PayrollService
	logger  *logging.Logger
}

// NewPayrollHandler creates a new PayrollHandler
func NewPayrollHandler(service *application.PayrollService, logger *logging.Logger) *PayrollHandler {
	return &PayrollHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the employee and payroll endpoints
func (h *PayrollHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/employees", h.CreateEmployee)
	rg.GET("/employees", h.ListEmployees)
	rg.GET("/employees/:employeeId", h.GetEmployee)
	rg.PUT("/employees/:employeeId/deactivate", h.DeactivateEmployee)

	rg.POST("/payroll", h.GeneratePayroll)
	rg.GET("/payroll", h.ListPayroll)
}

// CreateEmployee handles POST /api/v1/employees
func (h *PayrollHandler) CreateEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateEmployeeCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreateEmployee(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetEmployee handles GET /api/v1/employees/:employeeId
func (h *PayrollHandler) GetEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListEmployees handles GET /api/v1/employees
func (h *PayrollHandler) ListEmployees(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("activeOnly", "false"))
	req := api.ParseListRequest(c, "name")

	result, err := h.service.ListEmployees(c.Request.Context(), activeOnly, req.Pagination.Page, req.Pagination.PageSize)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeactivateEmployee handles PUT /api/v1/employees/:employeeId/deactivate
func (h *PayrollHandler) DeactivateEmployee(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.DeactivateEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GeneratePayroll handles POST /api/v1/payroll
func (h *PayrollHandler) GeneratePayroll(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.GeneratePayrollCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.GeneratePayroll(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// ListPayroll handles GET /api/v1/payroll
func (h *PayrollHandler) ListPayroll(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "month")
	query := application.ListPayrollQuery{
		EmployeeID: c.Query("employeeId"),
		Month:      c.Query("month"),
		Page:       req.Pagination.Page,
		PageSize:   req.Pagination.PageSize,
	}

	result, err := h.service.ListPayroll(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
