// Package handlers exposes the workshop services over HTTP.
package handlers

import (
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// respondServiceError maps a service error onto the HTTP response, falling
// back to a 500 for anything that is not an AppError.
func respondServiceError(responder *middleware.ErrorResponder, err error) {
	if appErr, ok := errors.AsAppError(err); ok {
		responder.RespondWithAppError(appErr)
		return
	}
	responder.RespondInternalError(err)
}
