package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// ReportHandler handles HTTP requests for workshop reports
type ReportHandler struct {
	service *application.ReportService
	logger  *logging.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *application.ReportService, logger *logging.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the report endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/daily", h.GetDailyReport)
	rg.POST("/reports/daily/send", h.SendDailyReport)
}

// GetDailyReport handles GET /api/v1/reports/daily. The date query parameter
// is a calendar day in YYYY-MM-DD form and defaults to today (UTC).
func (h *ReportHandler) GetDailyReport(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	date, appErr := parseReportDate(c)
	if appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.BuildDailyReport(c.Request.Context(), date)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// SendDailyReport handles POST /api/v1/reports/daily/send
func (h *ReportHandler) SendDailyReport(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	date, appErr := parseReportDate(c)
	if appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.SendDailyReport(c.Request.Context(), date)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func parseReportDate(c *gin.Context) (time.Time, *errors.AppError) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), nil
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, errors.ErrValidation("date must be in YYYY-MM-DD format")
	}
	return date, nil
}
