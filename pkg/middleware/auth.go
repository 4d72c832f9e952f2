package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/garage-platform/garage-api/pkg/auth"
	"github.com/garage-platform/garage-api/pkg/errors"
)

// Context keys for the authenticated principal
const (
	ContextKeyUserClaims = "userClaims"
)

// TokenValidator is the subset of the token service the middleware needs
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Claims, error)
}

// Auth validates a Bearer JWT and attaches the claims to the request context
func Auth(tokenSvc TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			AbortWithAppError(c, errors.ErrUnauthorized("missing or malformed authorization header"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := tokenSvc.ValidateToken(tokenString)
		if err != nil {
			AbortWithAppError(c, errors.ErrUnauthorized("invalid or expired token"))
			return
		}

		c.Set(ContextKeyUserClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)

		c.Next()
	}
}

// RequireRoles verifies the authenticated user holds one of the given roles.
// Must run after Auth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetUserClaims(c)
		if !ok {
			AbortWithAppError(c, errors.ErrUnauthorized("authentication required"))
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		AbortWithAppError(c, errors.ErrForbidden("insufficient permissions"))
	}
}

// GetUserClaims extracts the authenticated claims from the request context
func GetUserClaims(c *gin.Context) (*auth.Claims, bool) {
	val, exists := c.Get(ContextKeyUserClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*auth.Claims)
	return claims, ok
}
