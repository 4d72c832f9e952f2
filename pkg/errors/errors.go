// Package errors defines the application error type shared by the API
// layer and the services. Every error that reaches a handler is either
// an AppError or gets mapped into one before it is serialized.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Standard error codes
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeBadRequest        = "BAD_REQUEST"
)

// AppError carries an error code, a client-facing message and the HTTP
// status the API layer should respond with.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap attaches the underlying cause
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// WithDetail adds a single key to the details map
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithDetails replaces the details map
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

func newAppError(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// ErrValidation creates a 400 validation error
func ErrValidation(message string) *AppError {
	return newAppError(CodeValidationError, message, http.StatusBadRequest)
}

// ErrValidationWithFields creates a validation error with per-field messages
func ErrValidationWithFields(message string, fields map[string]string) *AppError {
	return ErrValidation(message).WithDetails(fields)
}

// ErrBadRequest creates a 400 for malformed requests
func ErrBadRequest(message string) *AppError {
	return newAppError(CodeBadRequest, message, http.StatusBadRequest)
}

// ErrNotFound creates a 404 for a missing resource
func ErrNotFound(resource string) *AppError {
	return newAppError(CodeNotFound, resource+" not found", http.StatusNotFound)
}

// ErrNotFoundWithID creates a 404 carrying the looked-up ID
func ErrNotFoundWithID(resource, id string) *AppError {
	return ErrNotFound(resource).WithDetail("id", id)
}

// ErrConflict creates a 409 for state conflicts
func ErrConflict(message string) *AppError {
	return newAppError(CodeConflict, message, http.StatusConflict)
}

// ErrInsufficientStock creates a 409 for a stock shortage on a part. The
// available and required quantities ride along in the details so API
// clients can surface them without parsing the message.
func ErrInsufficientStock(partID string, available, required int) *AppError {
	return newAppError(CodeInsufficientStock,
		fmt.Sprintf("insufficient stock for part %s", partID),
		http.StatusConflict).
		WithDetail("partId", partID).
		WithDetail("available", fmt.Sprintf("%d", available)).
		WithDetail("required", fmt.Sprintf("%d", required))
}

// ErrUnauthorized creates a 401
func ErrUnauthorized(message string) *AppError {
	if message == "" {
		message = "authentication required"
	}
	return newAppError(CodeUnauthorized, message, http.StatusUnauthorized)
}

// ErrForbidden creates a 403
func ErrForbidden(message string) *AppError {
	if message == "" {
		message = "access denied"
	}
	return newAppError(CodeForbidden, message, http.StatusForbidden)
}

// ErrInternal creates a 500
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return newAppError(CodeInternalError, message, http.StatusInternalServerError)
}

// AsAppError unwraps err into an AppError when there is one in the chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// MapDomainError classifies plain domain errors by message so handlers
// that receive raw errors still produce sensible statuses. Errors that
// are already AppErrors pass through untouched.
func MapDomainError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "not found"):
		return ErrNotFound("resource").Wrap(err)
	case strings.Contains(msg, "insufficient stock"):
		return newAppError(CodeInsufficientStock, err.Error(), http.StatusConflict).Wrap(err)
	case strings.Contains(msg, "already"),
		strings.Contains(msg, "must be completed"),
		strings.Contains(msg, "must be ordered"):
		return ErrConflict(err.Error()).Wrap(err)
	case strings.Contains(msg, "invalid"), strings.Contains(msg, "required"):
		return ErrValidation(err.Error()).Wrap(err)
	case strings.Contains(msg, "unauthorized"):
		return ErrUnauthorized(err.Error()).Wrap(err)
	case strings.Contains(msg, "forbidden"), strings.Contains(msg, "permission denied"):
		return ErrForbidden(err.Error()).Wrap(err)
	default:
		return ErrInternal("").Wrap(err)
	}
}
