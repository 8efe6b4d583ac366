package customer

import (
	"github.com/finvoice/finvoice/internal/types"
)

// Customer represents a customer in the system. Customers are read-only
// from the invoice flows: they are referenced, never validated for
// existence at this layer.
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// Name is the name of the customer
	Name string `db:"name" json:"name"`

	// Email is the email of the customer
	Email string `db:"email" json:"email"`

	// ImageURL is the avatar shown on the dashboard
	ImageURL string `db:"image_url" json:"image_url"`

	types.BaseModel
}
