package testutil

import (
	"context"

	"github.com/finvoice/finvoice/internal/types"
)

// GetContext returns a context carrying a test user identity
func GetContext() context.Context {
	ctx := context.Background()
	ctx = types.SetUserID(ctx, types.DefaultUserID)
	ctx = types.SetUserEmail(ctx, "user@example.com")
	return ctx
}
