// Package logging provides the structured JSON logger used across the
// service. It wraps log/slog with service-level base attributes and a
// few helpers for recurring log shapes.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel represents logging levels
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

// Config holds logger configuration
type Config struct {
	Level       LogLevel
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

// DefaultConfig returns a logger configuration suitable for local runs,
// picking environment and version from the process environment.
func DefaultConfig(serviceName string) *Config {
	return &Config{
		Level:       LevelInfo,
		ServiceName: serviceName,
		Environment: envOr("ENVIRONMENT", "development"),
		Version:     envOr("VERSION", "unknown"),
		Output:      os.Stdout,
	}
}

func (c *Config) slogLevel() slog.Level {
	switch c.Level {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger wraps slog.Logger with service-aware helpers
type Logger struct {
	*slog.Logger
}

// New creates a Logger emitting JSON records with RFC3339Nano UTC
// timestamps and service/environment/version base attributes.
func New(config *Config) *Logger {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	handler := slog.NewJSONHandler(output, &slog.HandlerOptions{
		Level:     config.slogLevel(),
		AddSource: config.AddSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
				}
			}
			return a
		},
	})

	return &Logger{
		Logger: slog.New(handler).With(
			"service", config.ServiceName,
			"environment", config.Environment,
			"version", config.Version,
		),
	}
}

// WithError returns a logger carrying the error as an attribute
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return &Logger{Logger: l.Logger.With("error", err.Error())}
}

// Audit records a mutating action against a resource for traceability
func (l *Logger) Audit(ctx context.Context, action, resource, resourceID, userID string, details map[string]any) {
	attrs := []any{
		"auditAction", action,
		"resource", resource,
		"resourceId", resourceID,
		"userId", userID,
	}
	for k, v := range details {
		attrs = append(attrs, k, v)
	}

	l.InfoContext(ctx, "Audit event", attrs...)
}

// EmailDelivery records an outbound email attempt
func (l *Logger) EmailDelivery(ctx context.Context, recipient, subject string, success bool, duration time.Duration) {
	level := slog.LevelInfo
	if !success {
		level = slog.LevelError
	}

	l.Log(ctx, level, "Email delivery",
		"recipient", recipient,
		"subject", subject,
		"success", success,
		"durationMs", duration.Milliseconds(),
	)
}

// SetDefault installs this logger as the process-wide slog default
func (l *Logger) SetDefault() {
	slog.SetDefault(l.Logger)
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
