package v1

import (
	"net/http"

	"github.com/finvoice/finvoice/internal/api/dto"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/service"
	"github.com/gin-gonic/gin"
)

// User-facing authentication messages. Credential failures are
// recoverable and re-prompt; anything else is reported generically.
const (
	MsgInvalidCredentials = "Invalid credentials."
	MsgAuthUnexpected     = "Something went wrong."
)

type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login verifies the submitted credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Errorw("failed to bind login request", "error", err)
		c.Error(ierr.WithError(err).WithHint("invalid request").Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case ierr.IsValidation(err):
			c.Error(err)
		case ierr.IsPermissionDenied(err):
			c.JSON(http.StatusUnauthorized, gin.H{"message": MsgInvalidCredentials})
		default:
			h.logger.Errorw("unexpected authentication failure", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": MsgAuthUnexpected})
		}
		return
	}

	c.SetCookie("session", resp.Token, int(60*60*24*30), "/", "", false, true)
	c.JSON(http.StatusOK, resp)
}
