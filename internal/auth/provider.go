package auth

import (
	"context"

	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/user"
	"github.com/finvoice/finvoice/internal/logger"
)

// Credentials are the raw login form fields
type Credentials struct {
	Email    string
	Password string
}

// Session is an authenticated session issued by a provider
type Session struct {
	UserID string
	Email  string
	Token  string
}

// Claims are the verified contents of a session token. TokenID is the
// short display id minted at issuance, used to tell sessions apart in
// logs.
type Claims struct {
	UserID  string
	Email   string
	TokenID string
}

// Provider is the credential verification capability. Verify returns a
// session on success, an error marked ErrPermissionDenied for a bad
// email/password pair, and an ErrSystem error for a provider fault.
// Callers classify failures on exactly that boundary.
type Provider interface {
	Verify(ctx context.Context, creds Credentials) (*Session, error)
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}

// NewProvider returns the configured credential provider
func NewProvider(cfg *config.Configuration, userRepo user.Repository, logger *logger.Logger) Provider {
	return NewFinvoiceAuth(cfg, userRepo, logger)
}
