package user

import (
	"github.com/finvoice/finvoice/internal/types"
)

// User represents a dashboard user account
type User struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`

	// Password is the bcrypt hash of the user's password. Never serialized.
	Password string `db:"password" json:"-"`

	types.BaseModel
}
