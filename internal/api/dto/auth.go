package dto

import (
	"github.com/finvoice/finvoice/internal/validator"
)

// LoginRequest carries the credential form fields
type LoginRequest struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=6"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// LoginResponse is returned on successful credential verification
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}
