package customer

import (
	"context"

	"github.com/finvoice/finvoice/internal/types"
)

// Repository defines the interface for customer data access
type Repository interface {
	Get(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, filter *types.Filter) ([]*Customer, error)
	Count(ctx context.Context, filter *types.Filter) (int, error)
}
