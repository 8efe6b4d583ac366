package invoice

import (
	"context"

	"github.com/finvoice/finvoice/internal/types"
)

// Repository defines the interface for invoice data access
type Repository interface {
	Create(ctx context.Context, invoice *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, filter *types.Filter) ([]*ListItem, error)
	Count(ctx context.Context, filter *types.Filter) (int, error)
	Update(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id string) error
}
