package service

import (
	"context"
	"testing"

	"github.com/finvoice/finvoice/internal/api/dto"
	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/user"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/testutil"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/finvoice/finvoice/internal/validator"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	ctx         context.Context
	userStore   *testutil.InMemoryUserStore
	authService AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.ctx = testutil.GetContext()
	validator.NewValidator()
	cfg := config.GetDefaultConfig()

	log, err := logger.NewLogger(cfg)
	s.Require().NoError(err)

	s.userStore = testutil.NewInMemoryUserStore()

	hashed, err := auth.HashPassword("123456")
	s.Require().NoError(err)
	s.Require().NoError(s.userStore.Create(s.ctx, &user.User{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:      "Test User",
		Email:     "user@example.com",
		Password:  hashed,
		BaseModel: types.GetDefaultBaseModel(s.ctx),
	}))

	provider := auth.NewProvider(cfg, s.userStore, log)
	s.authService = NewAuthService(ServiceParams{
		Logger:   log,
		Config:   cfg,
		UserRepo: s.userStore,
	}, provider)
}

func (s *AuthServiceSuite) TestLogin() {
	s.Run("valid_credentials_return_a_token", func() {
		resp, err := s.authService.Login(s.ctx, &dto.LoginRequest{
			Email:    "user@example.com",
			Password: "123456",
		})
		s.Require().NoError(err)
		s.NotEmpty(resp.Token)
		s.NotEmpty(resp.UserID)
	})

	s.Run("malformed_email_fails_validation_before_the_provider", func() {
		resp, err := s.authService.Login(s.ctx, &dto.LoginRequest{
			Email:    "not-an-email",
			Password: "123456",
		})
		s.Nil(resp)
		s.True(ierr.IsValidation(err))
	})

	s.Run("short_password_fails_validation", func() {
		resp, err := s.authService.Login(s.ctx, &dto.LoginRequest{
			Email:    "user@example.com",
			Password: "12345",
		})
		s.Nil(resp)
		s.True(ierr.IsValidation(err))
	})

	s.Run("wrong_password_is_a_permission_error", func() {
		resp, err := s.authService.Login(s.ctx, &dto.LoginRequest{
			Email:    "user@example.com",
			Password: "wrong-password",
		})
		s.Nil(resp)
		s.True(ierr.IsPermissionDenied(err))
	})

	s.Run("provider_fault_is_not_a_permission_error", func() {
		s.userStore.GetByEmailErr = ierr.NewError("connection refused").Mark(ierr.ErrDatabase)
		defer func() { s.userStore.GetByEmailErr = nil }()

		resp, err := s.authService.Login(s.ctx, &dto.LoginRequest{
			Email:    "user@example.com",
			Password: "123456",
		})
		s.Nil(resp)
		s.False(ierr.IsPermissionDenied(err))
		s.True(ierr.Is(err, ierr.ErrSystem))
	})
}
