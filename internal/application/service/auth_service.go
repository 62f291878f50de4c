package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/soldoshop/upn-nalog/internal/config"
	"github.com/soldoshop/upn-nalog/pkg/apperror"
	"github.com/soldoshop/upn-nalog/pkg/utils"
)

// AuthService authenticates the shop operator.
type AuthService struct {
	operator   config.OperatorConfig
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(operator config.OperatorConfig, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		operator:   operator,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	AccessToken string
	ExpiresAt   time.Time
}

// Login checks the operator credentials and issues an access token. Login is
// refused while no password hash is configured.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if s.operator.PasswordHash == "" {
		return nil, apperror.ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(s.operator.Username)) == 1
	passOK := utils.CheckPasswordHash(input.Password, s.operator.PasswordHash)
	if !userOK || !passOK {
		return nil, apperror.ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateAccessToken(s.operator.Username)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{AccessToken: token, ExpiresAt: expiresAt}, nil
}
