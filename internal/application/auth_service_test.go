package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/garage-platform/garage-api/pkg/auth"
	apperrors "github.com/garage-platform/garage-api/pkg/errors"
)

func TestLoginIssuesToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("workshop@123"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := &EnvCredentialVerifier{Username: "admin", PasswordHash: string(hash)}
	tokens := auth.NewService("test-secret-key", "garage-api", time.Hour)

	service := NewAuthService(verifier, tokens, time.Hour, testLogger())

	dto, err := service.Login(context.Background(), LoginCommand{Username: "admin", Password: "workshop@123"})
	require.NoError(t, err)
	assert.NotEmpty(t, dto.AccessToken)
	assert.Equal(t, "Bearer", dto.TokenType)
	assert.True(t, dto.ExpiresAt.After(time.Now()))

	claims, err := tokens.ValidateToken(dto.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("workshop@123"), bcrypt.MinCost)
	require.NoError(t, err)

	verifier := &EnvCredentialVerifier{Username: "admin", PasswordHash: string(hash)}
	tokens := auth.NewService("test-secret-key", "garage-api", time.Hour)
	service := NewAuthService(verifier, tokens, time.Hour, testLogger())

	for _, cmd := range []LoginCommand{
		{Username: "admin", Password: "wrong"},
		{Username: "nobody", Password: "workshop@123"},
	} {
		_, err := service.Login(context.Background(), cmd)
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	}
}
