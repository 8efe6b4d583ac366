package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/gin-gonic/gin"
)

// LoginRoute is where denied requests are sent
const LoginRoute = "/login"

const sessionPresentKey = "session_present"

// SessionMiddleware resolves the session token from the Authorization
// header (or the session cookie set by the login page) and, when valid,
// records the user identity on the request context. An absent or invalid
// token is not an error here: the request proceeds without a session and
// the authorization gate decides what that means for the path.
func SessionMiddleware(provider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie("session"); err == nil {
				token = cookie
			}
		}

		if token == "" {
			c.Next()
			return
		}

		claims, err := provider.ValidateToken(c.Request.Context(), token)
		if err != nil || claims == nil || claims.UserID == "" {
			logger.Debugw("ignoring invalid session token", "error", err)
			c.Next()
			return
		}

		logger.Debugw("session resolved",
			"session_id", claims.TokenID,
			"user_id", claims.UserID,
		)

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, claims.UserID)
		ctx = context.WithValue(ctx, types.CtxUserEmail, claims.Email)
		c.Request = c.Request.WithContext(ctx)
		c.Set(sessionPresentKey, true)

		c.Next()
	}
}

// AuthorizeMiddleware consults the route authorization predicate before
// any handler runs and acts on its decision: pass through, bounce to the
// login page, or force-redirect an authenticated session to the
// dashboard root.
func AuthorizeMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionPresent := c.GetBool(sessionPresentKey)

		decision := auth.Authorize(sessionPresent, c.Request.URL.Path, cfg.Auth.DashboardPrefix)
		switch decision.Action {
		case auth.DecisionDeny:
			c.Redirect(http.StatusFound, LoginRoute)
			c.Abort()
		case auth.DecisionRedirect:
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
		default:
			c.Next()
		}
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(types.HeaderAuthorization)
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
