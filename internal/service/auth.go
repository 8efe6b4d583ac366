package service

import (
	"context"

	"github.com/finvoice/finvoice/internal/api/dto"
	"github.com/finvoice/finvoice/internal/auth"
)

type AuthService interface {
	// Login verifies credentials through the injected provider. Failures
	// are classified into invalid credentials (recoverable, re-prompt)
	// and provider faults.
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	ServiceParams
	authProvider auth.Provider
}

func NewAuthService(params ServiceParams, authProvider auth.Provider) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  authProvider,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	session, err := s.authProvider.Verify(ctx, auth.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		Token:  session.Token,
		UserID: session.UserID,
	}, nil
}
