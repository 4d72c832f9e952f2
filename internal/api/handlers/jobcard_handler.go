package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/api"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// JobCardHandler handles HTTP requests for job cards
type JobCardHandler struct {
	service *application.JobCardService
	logger  *logging.Logger
}

// NewJobCardHandler creates a new JobCardHandler
func NewJobCardHandler(service *application.JobCardService, logger *logging.Logger) *JobCardHandler {
	return &JobCardHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the job card endpoints
func (h *JobCardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-cards", h.CreateJobCard)
	rg.GET("/job-cards", h.ListJobCards)
	rg.GET("/job-cards/:jobCardId", h.GetJobCard)
	rg.POST("/job-cards/:jobCardId/parts", h.ReconcileParts)
	rg.POST("/job-cards/:jobCardId/labor", h.AddLabor)
	rg.PUT("/job-cards/:jobCardId/discount", h.ApplyDiscount)
	rg.PUT("/job-cards/:jobCardId/start", h.StartJobCard)
	rg.PUT("/job-cards/:jobCardId/complete", h.CompleteJobCard)
	rg.PUT("/job-cards/:jobCardId/deliver", h.DeliverJobCard)
	rg.PUT("/job-cards/:jobCardId/cancel", h.CancelJobCard)
	rg.DELETE("/job-cards/:jobCardId", h.DeleteJobCard)
}

// CreateJobCard handles POST /api/v1/job-cards
func (h *JobCardHandler) CreateJobCard(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.CreateJobCardCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.CreateJobCard(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": result})
}

// GetJobCard handles GET /api/v1/job-cards/:jobCardId
func (h *JobCardHandler) GetJobCard(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := h.service.GetJobCard(c.Request.Context(), c.Param("jobCardId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ListJobCards handles GET /api/v1/job-cards
func (h *JobCardHandler) ListJobCards(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	req := api.ParseListRequest(c, "createdAt")
	query := application.ListJobCardsQuery{
		Status:     req.Filter.Status,
		CustomerID: c.Query("customerId"),
		Page:       req.Pagination.Page,
		PageSize:   req.Pagination.PageSize,
	}

	result, err := h.service.ListJobCards(c.Request.Context(), query)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReconcileParts handles POST /api/v1/job-cards/:jobCardId/parts
func (h *JobCardHandler) ReconcileParts(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.ReconcilePartsCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.JobCardID = c.Param("jobCardId")

	result, err := h.service.ReconcileParts(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// AddLabor handles POST /api/v1/job-cards/:jobCardId/labor
func (h *JobCardHandler) AddLabor(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.AddLaborCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.JobCardID = c.Param("jobCardId")

	result, err := h.service.AddLabor(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// ApplyDiscount handles PUT /api/v1/job-cards/:jobCardId/discount
func (h *JobCardHandler) ApplyDiscount(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.ApplyDiscountCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	cmd.JobCardID = c.Param("jobCardId")

	result, err := h.service.ApplyDiscount(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// StartJobCard handles PUT /api/v1/job-cards/:jobCardId/start
func (h *JobCardHandler) StartJobCard(c *gin.Context) {
	h.transition(c, h.service.StartJobCard)
}

// CompleteJobCard handles PUT /api/v1/job-cards/:jobCardId/complete
func (h *JobCardHandler) CompleteJobCard(c *gin.Context) {
	h.transition(c, h.service.CompleteJobCard)
}

// DeliverJobCard handles PUT /api/v1/job-cards/:jobCardId/deliver
func (h *JobCardHandler) DeliverJobCard(c *gin.Context) {
	h.transition(c, h.service.DeliverJobCard)
}

// CancelJobCard handles PUT /api/v1/job-cards/:jobCardId/cancel
func (h *JobCardHandler) CancelJobCard(c *gin.Context) {
	h.transition(c, h.service.CancelJobCard)
}

// DeleteJobCard handles DELETE /api/v1/job-cards/:jobCardId
func (h *JobCardHandler) DeleteJobCard(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	if err := h.service.DeleteJobCard(c.Request.Context(), c.Param("jobCardId")); err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *JobCardHandler) transition(c *gin.Context, fn func(ctx context.Context, jobCardID string) (*application.JobCardDTO, error)) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	result, err := fn(c.Request.Context(), c.Param("jobCardId"))
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
