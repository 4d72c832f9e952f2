package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/internal/application"
	"github.com/garage-platform/garage-api/pkg/logging"
	"github.com/garage-platform/garage-api/pkg/middleware"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service *application.AuthService
	logger  *logging.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *application.AuthService, logger *logging.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes wires the authentication endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	responder := middleware.NewErrorResponder(c, h.logger.Logger)

	var cmd application.LoginCommand
	if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}

	result, err := h.service.Login(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(responder, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
