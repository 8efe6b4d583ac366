package invoice

import (
	"time"

	"github.com/finvoice/finvoice/internal/types"
)

// Invoice is the invoice domain model. The column set mirrors the
// invoices table exactly: the mutation statements name these columns
// positionally and their text is part of the store contract.
type Invoice struct {
	// ID is generated by the store on insert
	ID string `db:"id" json:"id"`

	// CustomerID references an existing customer. Referential integrity
	// is enforced by the store, not this layer.
	CustomerID string `db:"customer_id" json:"customer_id"`

	// Amount is stored in minor units (cents)
	Amount int64 `db:"amount" json:"amount"`

	// Status is one of pending or paid
	Status types.InvoiceStatus `db:"status" json:"status"`

	// Date is the issue date, calendar date only
	Date time.Time `db:"date" json:"date"`
}

// DisplayDate renders the issue date the way the dashboard shows it
func (i *Invoice) DisplayDate() string {
	return i.Date.Format(types.DateFormat)
}

// ListItem is an invoice row joined with its customer, as rendered on
// the dashboard listing.
type ListItem struct {
	ID           string              `db:"id" json:"id"`
	CustomerID   string              `db:"customer_id" json:"customer_id"`
	Amount       int64               `db:"amount" json:"amount"`
	Status       types.InvoiceStatus `db:"status" json:"status"`
	Date         time.Time           `db:"date" json:"date"`
	CustomerName string              `db:"name" json:"customer_name"`
	Email        string              `db:"email" json:"email"`
	ImageURL     string              `db:"image_url" json:"image_url"`
}
