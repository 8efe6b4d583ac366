package dto

import (
	"github.com/finvoice/finvoice/internal/domain/customer"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/samber/lo"
)

// CustomerResponse is a customer as rendered in the invoice form select
type CustomerResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url"`
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func NewListCustomersResponse(customers []*customer.Customer, total int) *ListCustomersResponse {
	return &ListCustomersResponse{
		Items: lo.Map(customers, func(c *customer.Customer, _ int) *CustomerResponse {
			return &CustomerResponse{
				ID:       c.ID,
				Name:     c.Name,
				Email:    c.Email,
				ImageURL: c.ImageURL,
			}
		}),
		Total: total,
	}
}
