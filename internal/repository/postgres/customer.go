package postgres

import (
	"context"
	"database/sql"

	"github.com/finvoice/finvoice/internal/domain/customer"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/postgres"
	"github.com/finvoice/finvoice/internal/types"
)

type customerRepository struct {
	db     postgres.Querier
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	var c customer.Customer
	query := `SELECT id, name, email, image_url, created_at, updated_at, created_by, updated_by FROM customers WHERE id = $1`

	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("customer not found").
				WithHintf("Customer with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			Mark(ierr.ErrDatabase)
	}
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.Filter) ([]*customer.Customer, error) {
	customers := []*customer.Customer{}
	query := `
		SELECT id, name, email, image_url, created_at, updated_at, created_by, updated_by
		FROM customers
		WHERE name ILIKE $1 OR email ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &customers, query,
		"%"+filter.Query+"%",
		filter.GetLimit(),
		filter.GetOffset(),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list customers").
			Mark(ierr.ErrDatabase)
	}
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.Filter) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM customers WHERE name ILIKE $1 OR email ILIKE $1`

	err := r.db.GetContext(ctx, &count, query, "%"+filter.Query+"%")
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count customers").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}
