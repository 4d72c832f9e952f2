package application

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/garage-platform/garage-api/pkg/auth"
	"github.com/garage-platform/garage-api/pkg/errors"
	"github.com/garage-platform/garage-api/pkg/logging"
)

// CredentialVerifier checks a username/password pair and returns the user
// ID and role on success
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (userID, role string, err error)
}

// EnvCredentialVerifier verifies against the single admin account from
// configuration. The stored password is a bcrypt hash.
type EnvCredentialVerifier struct {
	Username     string
	PasswordHash string
}

// Verify implements CredentialVerifier
func (v *EnvCredentialVerifier) Verify(_ context.Context, username, password string) (string, string, error) {
	if username != v.Username {
		return "", "", errors.ErrUnauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(v.PasswordHash), []byte(password)); err != nil {
		return "", "", errors.ErrUnauthorized("invalid credentials")
	}
	return username, "admin", nil
}

// AuthService handles authentication
type AuthService struct {
	verifier CredentialVerifier
	tokens   auth.TokenService
	expiry   time.Duration
	logger   *logging.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(verifier CredentialVerifier, tokens auth.TokenService, expiry time.Duration, logger *logging.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		tokens:   tokens,
		expiry:   expiry,
		logger:   logger,
	}
}

// Login verifies credentials and issues a bearer token
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*TokenDTO, error) {
	userID, role, err := s.verifier.Verify(ctx, cmd.Username, cmd.Password)
	if err != nil {
		s.logger.Warn("Login rejected", "username", cmd.Username)
		return nil, errors.ErrUnauthorized("invalid credentials")
	}

	token, err := s.tokens.GenerateToken(userID, role)
	if err != nil {
		s.logger.WithError(err).Error("Failed to issue token", "userId", userID)
		return nil, errors.ErrInternal("failed to issue token")
	}

	s.logger.Audit(ctx, "login", "user", userID, userID, nil)

	return &TokenDTO{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Now().UTC().Add(s.expiry),
	}, nil
}
