package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/user"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// sessionDuration bounds how long an issued session token stays valid
const sessionDuration = 30 * 24 * time.Hour

type finvoiceAuth struct {
	authConfig config.AuthConfig
	userRepo   user.Repository
	logger     *logger.Logger
}

// NewFinvoiceAuth returns the first-party credential provider: bcrypt
// password verification against the user store plus HS256 session tokens.
func NewFinvoiceAuth(cfg *config.Configuration, userRepo user.Repository, logger *logger.Logger) Provider {
	return &finvoiceAuth{
		authConfig: cfg.Auth,
		userRepo:   userRepo,
		logger:     logger,
	}
}

func (f *finvoiceAuth) Verify(ctx context.Context, creds Credentials) (*Session, error) {
	u, err := f.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if ierr.IsNotFound(err) {
			// Unknown email is indistinguishable from a wrong password
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid credentials.").
				Mark(ierr.ErrPermissionDenied)
		}
		return nil, ierr.WithError(err).
			WithHint("Something went wrong.").
			Mark(ierr.ErrSystem)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(creds.Password)); err != nil {
		return nil, ierr.NewError("invalid credentials").
			WithHint("Invalid credentials.").
			Mark(ierr.ErrPermissionDenied)
	}

	token, err := f.generateToken(u.ID, u.Email)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Something went wrong.").
			Mark(ierr.ErrSystem)
	}

	return &Session{
		UserID: u.ID,
		Email:  u.Email,
		Token:  token,
	}, nil
}

func (f *finvoiceAuth) ValidateToken(ctx context.Context, token string) (*Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHint(fmt.Sprintf("unexpected signing method: %v", token.Header["alg"])).
				Mark(ierr.ErrPermissionDenied)
		}
		return []byte(f.authConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token parse error").
			Mark(ierr.ErrPermissionDenied)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrPermissionDenied)
	}

	userID, userOk := claims["user_id"].(string)
	if !userOk {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrPermissionDenied)
	}

	email, _ := claims["email"].(string)
	tokenID, _ := claims["jti"].(string)

	return &Claims{UserID: userID, Email: email, TokenID: tokenID}, nil
}

func (f *finvoiceAuth) generateToken(userID, email string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"jti":     types.GenerateShortIDWithPrefix(types.SHORT_ID_PREFIX_SESSION),
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(sessionDuration).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(f.authConfig.Secret))
}

// HashPassword hashes a plaintext password for storage. Used by the
// migration seeder and account creation flows.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}
	return string(hashed), nil
}
