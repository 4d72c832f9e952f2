package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/garage-platform/garage-api/pkg/errors"
)

// Context keys
const (
	ContextKeyRequestID     = "requestId"
	ContextKeyCorrelationID = "correlationId"
	ContextKeyUserID        = "userId"
)

// HTTP header names
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RequestID accepts an inbound X-Request-ID or generates one, and echoes it
// on the response
func RequestID() gin.HandlerFunc {
	return idMiddleware(HeaderRequestID, ContextKeyRequestID)
}

// CorrelationID does the same for X-Correlation-ID so a caller can tie
// several requests together
func CorrelationID() gin.HandlerFunc {
	return idMiddleware(HeaderCorrelationID, ContextKeyCorrelationID)
}

func idMiddleware(header, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(contextKey, id)
		c.Header(header, id)

		c.Next()
	}
}

// LoggerConfig holds request logging configuration
type LoggerConfig struct {
	Logger *slog.Logger
	// Paths skipped entirely, typically probes and the metrics scrape
	ExcludePaths []string
}

// DefaultLoggerConfig excludes the health, readiness and metrics endpoints
func DefaultLoggerConfig(logger *slog.Logger) *LoggerConfig {
	return &LoggerConfig{
		Logger:       logger,
		ExcludePaths: []string{"/health", "/ready", "/metrics"},
	}
}

// Logger logs each request with its IDs, status and latency
func Logger(logger *slog.Logger) gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig(logger))
}

// LoggerWithConfig is Logger with explicit configuration
func LoggerWithConfig(config *LoggerConfig) gin.HandlerFunc {
	skip := make(map[string]bool, len(config.ExcludePaths))
	for _, path := range config.ExcludePaths {
		skip[path] = true
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skip[path] {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []any{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latencyMs", latency.Milliseconds(),
			"clientIP", c.ClientIP(),
			"userAgent", c.Request.UserAgent(),
			"requestId", GetRequestID(c),
			"correlationId", GetCorrelationID(c),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}

		switch {
		case status >= http.StatusInternalServerError:
			config.Logger.Error("HTTP request", attrs...)
		case status >= http.StatusBadRequest:
			config.Logger.Warn("HTTP request", attrs...)
		default:
			config.Logger.Info("HTTP request", attrs...)
		}
	}
}

// Recovery converts panics into a logged 500 response
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"requestId", GetRequestID(c),
					"correlationId", GetCorrelationID(c),
				)

				AbortWithAppError(c, &errors.AppError{
					Code:       "INTERNAL_ERROR",
					Message:    "An unexpected error occurred",
					HTTPStatus: http.StatusInternalServerError,
				})
			}
		}()
		c.Next()
	}
}

// GetRequestID extracts the request ID from the gin context
func GetRequestID(c *gin.Context) string {
	return stringFromContext(c, ContextKeyRequestID)
}

// GetCorrelationID extracts the correlation ID from the gin context
func GetCorrelationID(c *gin.Context) string {
	return stringFromContext(c, ContextKeyCorrelationID)
}

func stringFromContext(c *gin.Context, key string) string {
	if val, exists := c.Get(key); exists {
		if s, ok := val.(string); ok {
			return s
		}
	}
	return ""
}
