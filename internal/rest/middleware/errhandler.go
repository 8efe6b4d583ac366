package middleware

import (
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors attached to the gin context as the
// standard error envelope. Navigation is never routed through here:
// handlers redirect directly on a success outcome.
func ErrorHandler(logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()

		logger.Errorw("request failed",
			"request_id", types.GetRequestID(ctx),
			"path", c.Request.URL.Path,
			"error", err,
		)

		c.JSON(ierr.HTTPStatusFromErr(err), ierr.NewErrorResponse(err))
	}
}
