package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finvoice/finvoice/internal/api/dto"
	"github.com/finvoice/finvoice/internal/cache"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/customer"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/testutil"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/stretchr/testify/suite"
)

const cacheSentinelKey = cache.PrefixInvoice + "sentinel"

type InvoiceServiceSuite struct {
	suite.Suite
	ctx            context.Context
	cfg            *config.Configuration
	cache          cache.Cache
	customerStore  *testutil.InMemoryCustomerStore
	invoiceStore   *testutil.InMemoryInvoiceStore
	invoiceService InvoiceService
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.ctx = testutil.GetContext()
	s.cfg = config.GetDefaultConfig()

	log, err := logger.NewLogger(s.cfg)
	s.Require().NoError(err)

	s.cache = cache.NewInMemoryCache(s.cfg)
	s.customerStore = testutil.NewInMemoryCustomerStore()
	s.customerStore.Add(&customer.Customer{ID: "c1", Name: "Acme Corp", Email: "billing@acme.test"})
	s.invoiceStore = testutil.NewInMemoryInvoiceStore(s.customerStore)

	s.invoiceService = NewInvoiceService(ServiceParams{
		Logger:       log,
		Config:       s.cfg,
		Cache:        s.cache,
		InvoiceRepo:  s.invoiceStore,
		CustomerRepo: s.customerStore,
	})
}

// seedCacheSentinel plants a cached listing entry so tests can observe
// whether a mutation invalidated the invoice cache prefix.
func (s *InvoiceServiceSuite) seedCacheSentinel() {
	s.cache.Set(s.ctx, cacheSentinelKey, true, 0)
}

func (s *InvoiceServiceSuite) cacheSentinelPresent() bool {
	_, found := s.cache.Get(s.ctx, cacheSentinelKey)
	return found
}

func (s *InvoiceServiceSuite) TestCreateFromForm() {
	s.Run("successful_creation_inserts_and_redirects", func() {
		s.SetupTest()
		s.seedCacheSentinel()

		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10.50",
			Status:     "paid",
		})

		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.Equal(InvoiceListingRoute, outcome.RedirectTo)
		s.Empty(outcome.Errors)

		all := s.invoiceStore.All()
		s.Require().Len(all, 1)
		s.Equal("c1", all[0].CustomerID)
		s.Equal(int64(1050), all[0].Amount)
		s.Equal(types.InvoiceStatusPaid, all[0].Status)
		s.Equal(time.Now().UTC().Format(types.DateFormat), all[0].DisplayDate())

		s.False(s.cacheSentinelPresent(), "listing cache should be invalidated")
	})

	s.Run("validation_failure_never_touches_store", func() {
		s.SetupTest()
		s.seedCacheSentinel()

		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "0",
			Status:     "paid",
		})

		s.Equal(dto.MutationValidationFailed, outcome.Status)
		s.Equal(MsgCreateMissingFields, outcome.Message)
		s.Equal([]string{dto.MsgAmountTooSmall}, outcome.Errors[dto.FieldAmount])
		s.Empty(outcome.RedirectTo)
		s.Empty(s.invoiceStore.All())
		s.True(s.cacheSentinelPresent(), "no revalidation on validation failure")
	})

	s.Run("all_field_errors_reported_together", func() {
		s.SetupTest()

		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{})

		s.Equal(dto.MutationValidationFailed, outcome.Status)
		s.Len(outcome.Errors, 3)
		s.Contains(outcome.Errors, dto.FieldCustomerID)
		s.Contains(outcome.Errors, dto.FieldAmount)
		s.Contains(outcome.Errors, dto.FieldStatus)
	})

	s.Run("store_failure_is_swallowed_by_default", func() {
		s.SetupTest()
		s.seedCacheSentinel()
		s.invoiceStore.CreateErr = errors.New("connection refused")

		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10",
			Status:     "pending",
		})

		// Swallow policy: the flow still revalidates and redirects
		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.Equal(InvoiceListingRoute, outcome.RedirectTo)
		s.False(s.cacheSentinelPresent())
	})

	s.Run("store_failure_surfaces_when_configured", func() {
		s.SetupTest()
		s.cfg.Invoice.CreateErrorPolicy = types.StoreErrorPolicySurface
		s.seedCacheSentinel()
		s.invoiceStore.CreateErr = errors.New("connection refused")

		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10",
			Status:     "pending",
		})

		s.Equal(dto.MutationExecutionFailed, outcome.Status)
		s.Contains(outcome.Message, "Database Error: Failed to Create Invoice.")
		s.Contains(outcome.Message, "connection refused")
		s.Empty(outcome.RedirectTo)
		s.True(s.cacheSentinelPresent(), "no revalidation on surfaced failure")
	})
}

func (s *InvoiceServiceSuite) TestUpdateFromForm() {
	createInvoice := func() string {
		outcome := s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10.00",
			Status:     "pending",
		})
		s.Require().Equal(dto.MutationSucceeded, outcome.Status)
		return s.invoiceStore.All()[0].ID
	}

	s.Run("successful_update_redirects", func() {
		s.SetupTest()
		id := createInvoice()
		created := s.invoiceStore.All()[0]
		s.seedCacheSentinel()

		outcome := s.invoiceService.UpdateFromForm(s.ctx, id, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "25.75",
			Status:     "paid",
		})

		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.Equal(InvoiceListingRoute, outcome.RedirectTo)

		updated, err := s.invoiceStore.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(int64(2575), updated.Amount)
		s.Equal(types.InvoiceStatusPaid, updated.Status)
		// Issue date is set once at creation and never regenerated
		s.Equal(created.Date, updated.Date)

		s.False(s.cacheSentinelPresent())
	})

	s.Run("validation_failure_returns_field_errors", func() {
		s.SetupTest()
		id := createInvoice()

		outcome := s.invoiceService.UpdateFromForm(s.ctx, id, &dto.InvoiceFormInput{
			CustomerID: "",
			Amount:     "abc",
			Status:     "paid",
		})

		s.Equal(dto.MutationValidationFailed, outcome.Status)
		s.Equal(MsgUpdateMissingFields, outcome.Message)
		s.Equal([]string{dto.MsgSelectCustomer}, outcome.Errors[dto.FieldCustomerID])
		s.Equal([]string{dto.MsgAmountInvalid}, outcome.Errors[dto.FieldAmount])

		unchanged, err := s.invoiceStore.Get(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(int64(1000), unchanged.Amount)
	})

	s.Run("store_failure_surfaces_by_default", func() {
		s.SetupTest()
		id := createInvoice()
		s.seedCacheSentinel()
		s.invoiceStore.UpdateErr = errors.New("connection reset")

		outcome := s.invoiceService.UpdateFromForm(s.ctx, id, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "30",
			Status:     "paid",
		})

		s.Equal(dto.MutationExecutionFailed, outcome.Status)
		s.Contains(outcome.Message, "Database Error: Failed to Update Invoice.")
		s.Contains(outcome.Message, "connection reset")
		s.Empty(outcome.RedirectTo)
		s.True(s.cacheSentinelPresent(), "no revalidation on surfaced failure")
	})

	s.Run("update_of_absent_id_is_a_no_op_success", func() {
		s.SetupTest()
		s.seedCacheSentinel()

		outcome := s.invoiceService.UpdateFromForm(s.ctx, "inv_missing", &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "30",
			Status:     "paid",
		})

		// The statement affects zero rows; last-writer-wins semantics
		// report success and the flow proceeds
		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.Equal(InvoiceListingRoute, outcome.RedirectTo)
		s.False(s.cacheSentinelPresent())
	})
}

func (s *InvoiceServiceSuite) TestDelete() {
	s.Run("delete_removes_row_and_invalidates_cache", func() {
		s.SetupTest()
		s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10",
			Status:     "pending",
		})
		id := s.invoiceStore.All()[0].ID
		s.seedCacheSentinel()

		outcome := s.invoiceService.Delete(s.ctx, id)

		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.Empty(outcome.RedirectTo, "deletion happens in the listing view, no redirect")
		s.False(s.invoiceStore.HasInvoice(id))
		s.False(s.cacheSentinelPresent())
	})

	s.Run("delete_of_absent_id_is_a_no_op_success", func() {
		s.SetupTest()
		s.seedCacheSentinel()

		outcome := s.invoiceService.Delete(s.ctx, "inv_missing")

		s.Equal(dto.MutationSucceeded, outcome.Status)
		s.False(s.cacheSentinelPresent())
	})

	s.Run("store_failure_surfaces_message", func() {
		s.SetupTest()
		s.seedCacheSentinel()
		s.invoiceStore.DeleteErr = errors.New("disk full")

		outcome := s.invoiceService.Delete(s.ctx, "inv_any")

		s.Equal(dto.MutationExecutionFailed, outcome.Status)
		s.Contains(outcome.Message, "Database Error: Failed to Delete Invoice.")
		s.Contains(outcome.Message, "disk full")
		s.True(s.cacheSentinelPresent())
	})
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	s.Run("listing_is_cached_until_a_mutation_revalidates", func() {
		s.SetupTest()
		s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10",
			Status:     "pending",
		})

		first, err := s.invoiceService.ListInvoices(s.ctx, &types.Filter{})
		s.Require().NoError(err)
		s.Equal(1, first.Total)

		// A second identical read is served from cache
		cached, err := s.invoiceService.ListInvoices(s.ctx, &types.Filter{})
		s.Require().NoError(err)
		s.Same(first, cached)

		// A mutation invalidates; the next read sees fresh data
		s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "20",
			Status:     "paid",
		})
		fresh, err := s.invoiceService.ListInvoices(s.ctx, &types.Filter{})
		s.Require().NoError(err)
		s.Equal(2, fresh.Total)
	})

	s.Run("listing_joins_customer_details", func() {
		s.SetupTest()
		s.invoiceService.CreateFromForm(s.ctx, &dto.InvoiceFormInput{
			CustomerID: "c1",
			Amount:     "10",
			Status:     "pending",
		})

		resp, err := s.invoiceService.ListInvoices(s.ctx, &types.Filter{})
		s.Require().NoError(err)
		s.Require().Len(resp.Items, 1)
		s.Equal("Acme Corp", resp.Items[0].CustomerName)
		s.Equal("billing@acme.test", resp.Items[0].Email)
	})
}
