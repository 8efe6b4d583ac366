package dto

import (
	"github.com/finvoice/finvoice/internal/domain/invoice"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Field error messages rendered next to the form inputs. The wording is
// part of the dashboard contract.
const (
	MsgSelectCustomer = "Please select a customer."
	MsgAmountInvalid  = "Please enter a valid amount."
	MsgAmountTooSmall = "Please enter an amount greater than $0."
	MsgSelectStatus   = "Please select an invoice status."
)

// Form field names used as keys in the field error map
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// FieldErrors maps a form field name to the ordered list of violation
// messages for that field, so the form can render every failing field at
// once.
type FieldErrors map[string][]string

func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// InvoiceFormInput is the raw submitted field map for create and update.
// The invoice id is never accepted here: it is path-derived for updates
// and store-generated for creates. The issue date is system-generated.
type InvoiceFormInput struct {
	CustomerID string `form:"customerId" json:"customerId"`
	Amount     string `form:"amount" json:"amount"`
	Status     string `form:"status" json:"status"`
}

// InvoiceFormValues holds the coerced, typed fields of a valid submission
type InvoiceFormValues struct {
	CustomerID string
	Amount     decimal.Decimal
	Status     types.InvoiceStatus
}

// AmountInCents converts the submitted major-unit amount to minor units.
// Exact for inputs with at most two decimal places.
func (v *InvoiceFormValues) AmountInCents() int64 {
	return v.Amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Parse validates the raw input and either returns the typed fields or a
// field error map covering every failing field, never just the first.
func (in *InvoiceFormInput) Parse() (*InvoiceFormValues, FieldErrors) {
	errs := FieldErrors{}
	values := &InvoiceFormValues{}

	if in.CustomerID == "" {
		errs.Add(FieldCustomerID, MsgSelectCustomer)
	} else {
		values.CustomerID = in.CustomerID
	}

	amount, err := decimal.NewFromString(in.Amount)
	switch {
	case err != nil:
		errs.Add(FieldAmount, MsgAmountInvalid)
	case !amount.GreaterThan(decimal.Zero):
		errs.Add(FieldAmount, MsgAmountTooSmall)
	default:
		values.Amount = amount
	}

	status := types.InvoiceStatus(in.Status)
	if !status.Validate() {
		errs.Add(FieldStatus, MsgSelectStatus)
	} else {
		values.Status = status
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return values, nil
}

// MutationStatus discriminates the outcome of an invoice mutation
type MutationStatus string

const (
	MutationSucceeded        MutationStatus = "succeeded"
	MutationValidationFailed MutationStatus = "validation_failed"
	MutationExecutionFailed  MutationStatus = "execution_failed"
)

// MutationOutcome is the result of a form mutation. Navigation is a value
// here, not a raised fault: a successful outcome carries the redirect
// target and the caller performs the navigation.
type MutationOutcome struct {
	Status     MutationStatus `json:"-"`
	RedirectTo string         `json:"-"`
	Errors     FieldErrors    `json:"errors,omitempty"`
	Message    string         `json:"message,omitempty"`
}

func SuccessOutcome(redirectTo string) MutationOutcome {
	return MutationOutcome{Status: MutationSucceeded, RedirectTo: redirectTo}
}

func ValidationFailureOutcome(errs FieldErrors, message string) MutationOutcome {
	return MutationOutcome{Status: MutationValidationFailed, Errors: errs, Message: message}
}

func ExecutionFailureOutcome(message string) MutationOutcome {
	return MutationOutcome{Status: MutationExecutionFailed, Message: message}
}

// InvoiceResponse is a single invoice as returned by the API
type InvoiceResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Amount     int64               `json:"amount"`
	Status     types.InvoiceStatus `json:"status"`
	Date       string              `json:"date"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.DisplayDate(),
	}
}

// InvoiceListItemResponse is an invoice row joined with its customer
type InvoiceListItemResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customer_id"`
	Amount       int64               `json:"amount"`
	Status       types.InvoiceStatus `json:"status"`
	Date         string              `json:"date"`
	CustomerName string              `json:"customer_name"`
	Email        string              `json:"email"`
	ImageURL     string              `json:"image_url"`
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceListItemResponse]

func NewListInvoicesResponse(items []*invoice.ListItem, total int) *ListInvoicesResponse {
	return &ListInvoicesResponse{
		Items: lo.Map(items, func(item *invoice.ListItem, _ int) *InvoiceListItemResponse {
			return &InvoiceListItemResponse{
				ID:           item.ID,
				CustomerID:   item.CustomerID,
				Amount:       item.Amount,
				Status:       item.Status,
				Date:         item.Date.Format(types.DateFormat),
				CustomerName: item.CustomerName,
				Email:        item.Email,
				ImageURL:     item.ImageURL,
			}
		}),
		Total: total,
	}
}
