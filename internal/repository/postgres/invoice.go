package postgres

import (
	"context"
	"database/sql"

	"github.com/finvoice/finvoice/internal/domain/invoice"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/postgres"
	"github.com/finvoice/finvoice/internal/types"
)

// The mutation statement text below is part of the store contract and
// must not change structurally.
const (
	insertInvoiceQuery = `INSERT INTO invoices (customer_id, amount, status, date) VALUES ($1, $2, $3, $4)`
	updateInvoiceQuery = `UPDATE invoices SET customer_id = $1, amount = $2, status = $3 WHERE id = $4`
	deleteInvoiceQuery = `DELETE FROM invoices WHERE id = $1`
)

type invoiceRepository struct {
	db     postgres.Querier
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("creating invoice",
		"customer_id", inv.CustomerID,
		"amount", inv.Amount,
		"status", inv.Status,
	)

	_, err := r.db.ExecContext(ctx, insertInvoiceQuery,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.Date.Format(types.DateFormat),
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to insert invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	query := `SELECT id, customer_id, amount, status, date FROM invoices WHERE id = $1`

	err := r.db.GetContext(ctx, &inv, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ierr.NewError("invoice not found").
				WithHintf("Invoice with ID %s was not found", id).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice").
			Mark(ierr.ErrDatabase)
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.Filter) ([]*invoice.ListItem, error) {
	items := []*invoice.ListItem{}
	query := `
		SELECT
			invoices.id,
			invoices.customer_id,
			invoices.amount,
			invoices.status,
			invoices.date,
			customers.name,
			customers.email,
			customers.image_url
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1 OR
			invoices.amount::text ILIKE $1 OR
			invoices.date::text ILIKE $1 OR
			invoices.status ILIKE $1
		ORDER BY invoices.date DESC
		LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &items, query,
		"%"+filter.Query+"%",
		filter.GetLimit(),
		filter.GetOffset(),
	)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoices").
			Mark(ierr.ErrDatabase)
	}
	return items, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.Filter) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM invoices
		JOIN customers ON invoices.customer_id = customers.id
		WHERE
			customers.name ILIKE $1 OR
			customers.email ILIKE $1 OR
			invoices.amount::text ILIKE $1 OR
			invoices.date::text ILIKE $1 OR
			invoices.status ILIKE $1`

	err := r.db.GetContext(ctx, &count, query, "%"+filter.Query+"%")
	if err != nil {
		return 0, ierr.WithError(err).
			WithHint("Failed to count invoices").
			Mark(ierr.ErrDatabase)
	}
	return count, nil
}

func (r *invoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	r.logger.Debugw("updating invoice",
		"invoice_id", inv.ID,
		"customer_id", inv.CustomerID,
	)

	// Zero rows affected is not an error: updates of absent identifiers
	// are last-writer-wins no-ops at this layer.
	_, err := r.db.ExecContext(ctx, updateInvoiceQuery,
		inv.CustomerID,
		inv.Amount,
		inv.Status,
		inv.ID,
	)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to update invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func (r *invoiceRepository) Delete(ctx context.Context, id string) error {
	r.logger.Debugw("deleting invoice", "invoice_id", id)

	_, err := r.db.ExecContext(ctx, deleteInvoiceQuery, id)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete invoice").
			Mark(ierr.ErrDatabase)
	}
	return nil
}
