package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finvoice/finvoice/internal/api/dto"
	"github.com/finvoice/finvoice/internal/cache"
	"github.com/finvoice/finvoice/internal/domain/invoice"
	"github.com/finvoice/finvoice/internal/types"
)

// InvoiceListingRoute is where successful create and update mutations
// redirect to
const InvoiceListingRoute = "/dashboard/invoices"

// Operation-level failure messages. The wording is part of the dashboard
// contract.
const (
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice."
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice."

	msgCreateDatabaseError = "Database Error: Failed to Create Invoice. Error message: %s"
	msgUpdateDatabaseError = "Database Error: Failed to Update Invoice. Error message: %s"
	msgDeleteDatabaseError = "Database Error: Failed to Delete Invoice. Error message: %s"
)

const invoiceListCacheExpiry = 5 * time.Minute

type InvoiceService interface {
	// CreateFromForm validates a submitted form, inserts the invoice and
	// reports the outcome. Navigation is returned as a value, never raised.
	CreateFromForm(ctx context.Context, input *dto.InvoiceFormInput) dto.MutationOutcome

	// UpdateFromForm validates a submitted form and updates the invoice
	// identified by id. The id comes from the route, never from the form.
	UpdateFromForm(ctx context.Context, id string, input *dto.InvoiceFormInput) dto.MutationOutcome

	// Delete removes the invoice by id. Deletion happens from within the
	// listing view, so a successful outcome carries no redirect.
	Delete(ctx context.Context, id string) dto.MutationOutcome

	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter *types.Filter) (*dto.ListInvoicesResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{ServiceParams: params}
}

func (s *invoiceService) CreateFromForm(ctx context.Context, input *dto.InvoiceFormInput) dto.MutationOutcome {
	values, fieldErrs := input.Parse()
	if fieldErrs != nil {
		return dto.ValidationFailureOutcome(fieldErrs, MsgCreateMissingFields)
	}

	inv := &invoice.Invoice{
		CustomerID: values.CustomerID,
		Amount:     values.AmountInCents(),
		Status:     values.Status,
		Date:       time.Now().UTC(),
	}

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		if s.Config.Invoice.CreateErrorPolicy == types.StoreErrorPolicySurface {
			return dto.ExecutionFailureOutcome(fmt.Sprintf(msgCreateDatabaseError, err.Error()))
		}
		// Swallow policy: log and continue with the revalidate and
		// redirect flow as if the insert had succeeded.
		s.Logger.Errorw("failed to insert invoice",
			"customer_id", inv.CustomerID,
			"user", types.GetUserEmail(ctx),
			"error", err,
		)
	}

	s.revalidateListing(ctx)
	return dto.SuccessOutcome(InvoiceListingRoute)
}

func (s *invoiceService) UpdateFromForm(ctx context.Context, id string, input *dto.InvoiceFormInput) dto.MutationOutcome {
	values, fieldErrs := input.Parse()
	if fieldErrs != nil {
		return dto.ValidationFailureOutcome(fieldErrs, MsgUpdateMissingFields)
	}

	// No date regeneration on update: the issue date is set once at
	// creation time.
	inv := &invoice.Invoice{
		ID:         id,
		CustomerID: values.CustomerID,
		Amount:     values.AmountInCents(),
		Status:     values.Status,
	}

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		if s.Config.Invoice.UpdateErrorPolicy == types.StoreErrorPolicySwallow {
			s.Logger.Errorw("failed to update invoice",
				"invoice_id", id,
				"user", types.GetUserEmail(ctx),
				"error", err,
			)
		} else {
			return dto.ExecutionFailureOutcome(fmt.Sprintf(msgUpdateDatabaseError, err.Error()))
		}
	}

	s.revalidateListing(ctx)
	return dto.SuccessOutcome(InvoiceListingRoute)
}

func (s *invoiceService) Delete(ctx context.Context, id string) dto.MutationOutcome {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return dto.ExecutionFailureOutcome(fmt.Sprintf(msgDeleteDatabaseError, err.Error()))
	}

	// The listing re-renders in place after invalidation, so there is no
	// redirect target here.
	s.revalidateListing(ctx)
	return dto.SuccessOutcome("")
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter *types.Filter) (*dto.ListInvoicesResponse, error) {
	if filter == nil {
		filter = &types.Filter{}
	}

	cacheKey := cache.GenerateKey(cache.PrefixInvoice, "list", filter.Query, filter.Page, filter.GetLimit())
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ListInvoicesResponse); ok {
			return resp, nil
		}
	}

	items, err := s.InvoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.InvoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.NewListInvoicesResponse(items, total)
	s.Cache.Set(ctx, cacheKey, resp, invoiceListCacheExpiry)
	return resp, nil
}

// revalidateListing marks every cached invoice listing stale. It is
// fire-and-forget relative to the calling request.
func (s *invoiceService) revalidateListing(ctx context.Context) {
	s.Cache.DeleteByPrefix(ctx, cache.PrefixInvoice)
}
