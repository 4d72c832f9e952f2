package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/pkg/errors"
)

// APIErrorResponse is the error envelope every failed request returns
type APIErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
}

func errorResponse(c *gin.Context, appErr *errors.AppError) APIErrorResponse {
	return APIErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	}
}

// ErrorHandler turns errors attached to the gin context into envelope
// responses after the handler chain runs
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		appErr := errors.MapDomainError(c.Errors.Last().Err)
		logError(logger, c, appErr)
		c.JSON(appErr.HTTPStatus, errorResponse(c, appErr))
	}
}

// ErrorResponder sends error envelopes for a single request
type ErrorResponder struct {
	ctx    *gin.Context
	logger *slog.Logger
}

// NewErrorResponder creates an ErrorResponder bound to the request
func NewErrorResponder(ctx *gin.Context, logger *slog.Logger) *ErrorResponder {
	return &ErrorResponder{ctx: ctx, logger: logger}
}

// RespondWithAppError sends the AppError with its mapped status
func (r *ErrorResponder) RespondWithAppError(appErr *errors.AppError) {
	logError(r.logger, r.ctx, appErr)
	r.ctx.JSON(appErr.HTTPStatus, errorResponse(r.ctx, appErr))
}

// RespondInternalError sends a 500 wrapping the cause
func (r *ErrorResponder) RespondInternalError(err error) {
	r.RespondWithAppError(errors.ErrInternal("").Wrap(err))
}

func logError(logger *slog.Logger, c *gin.Context, appErr *errors.AppError) {
	level := slog.LevelError
	if appErr.HTTPStatus < http.StatusInternalServerError {
		level = slog.LevelWarn
	}

	attrs := []any{
		"code", appErr.Code,
		"message", appErr.Message,
		"status", appErr.HTTPStatus,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"requestId", GetRequestID(c),
		"clientIP", c.ClientIP(),
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err.Error())
	}
	if appErr.Details != nil {
		attrs = append(attrs, "details", appErr.Details)
	}

	logger.Log(c.Request.Context(), level, "API error", attrs...)
}

// AbortWithAppError aborts the chain with the AppError's envelope
func AbortWithAppError(c *gin.Context, appErr *errors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, errorResponse(c, appErr))
}
