package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/finvoice/finvoice/internal/api/dto"
	v1 "github.com/finvoice/finvoice/internal/api/v1"
	"github.com/finvoice/finvoice/internal/auth"
	"github.com/finvoice/finvoice/internal/cache"
	"github.com/finvoice/finvoice/internal/config"
	"github.com/finvoice/finvoice/internal/domain/customer"
	"github.com/finvoice/finvoice/internal/domain/user"
	"github.com/finvoice/finvoice/internal/logger"
	"github.com/finvoice/finvoice/internal/service"
	"github.com/finvoice/finvoice/internal/testutil"
	"github.com/finvoice/finvoice/internal/types"
	"github.com/finvoice/finvoice/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type routerFixture struct {
	engine       *gin.Engine
	invoiceStore *testutil.InMemoryInvoiceStore
	token        string
}

func newRouterFixture(t *testing.T) *routerFixture {
	gin.SetMode(gin.TestMode)
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)

	customerStore := testutil.NewInMemoryCustomerStore()
	customerStore.Add(&customer.Customer{ID: "c1", Name: "Acme Corp", Email: "billing@acme.test"})
	invoiceStore := testutil.NewInMemoryInvoiceStore(customerStore)
	userStore := testutil.NewInMemoryUserStore()

	hashed, err := auth.HashPassword("123456")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), &user.User{
		ID:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Name:     "Test User",
		Email:    "user@example.com",
		Password: hashed,
	}))

	provider := auth.NewProvider(cfg, userStore, log)
	params := service.ServiceParams{
		Logger:       log,
		Config:       cfg,
		Cache:        cache.NewInMemoryCache(cfg),
		InvoiceRepo:  invoiceStore,
		CustomerRepo: customerStore,
		UserRepo:     userStore,
	}

	handlers := NewHandlers(
		v1.NewHealthHandler(),
		v1.NewAuthHandler(service.NewAuthService(params, provider), log),
		v1.NewInvoiceHandler(service.NewInvoiceService(params), log),
		v1.NewCustomerHandler(service.NewCustomerService(params), log),
	)

	engine := SetupRouter(handlers, provider, cfg, log)

	session, err := provider.Verify(context.Background(), auth.Credentials{
		Email:    "user@example.com",
		Password: "123456",
	})
	require.NoError(t, err)

	return &routerFixture{
		engine:       engine,
		invoiceStore: invoiceStore,
		token:        session.Token,
	}
}

func (f *routerFixture) do(method, path string, form url.Values, authenticated bool) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if authenticated {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+f.token)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestDashboardGate(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("unauthenticated dashboard request bounces to login", func(t *testing.T) {
		w := f.do(http.MethodGet, "/dashboard/invoices", nil, false)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login", w.Header().Get("Location"))
	})

	t.Run("authenticated dashboard request passes", func(t *testing.T) {
		w := f.do(http.MethodGet, "/dashboard/invoices", nil, true)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health endpoint is open", func(t *testing.T) {
		w := f.do(http.MethodGet, "/health", nil, false)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("authenticated session off the dashboard is sent to it", func(t *testing.T) {
		w := f.do(http.MethodGet, "/health", nil, true)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/dashboard", w.Header().Get("Location"))
	})

	t.Run("garbage token does not grant access", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
		req.Header.Set(types.HeaderAuthorization, "Bearer not-a-token")
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, req)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, "/login", w.Header().Get("Location"))
	})
}

func TestLoginEndpoint(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("valid credentials set a session cookie", func(t *testing.T) {
		w := f.do(http.MethodPost, "/login", url.Values{
			"email":    {"user@example.com"},
			"password": {"123456"},
		}, false)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Token)
		require.Contains(t, w.Header().Get("Set-Cookie"), "session=")
	})

	t.Run("wrong password answers with the invalid credentials message", func(t *testing.T) {
		w := f.do(http.MethodPost, "/login", url.Values{
			"email":    {"user@example.com"},
			"password": {"wrong-password"},
		}, false)
		require.Equal(t, http.StatusUnauthorized, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Equal(t, v1.MsgInvalidCredentials, resp["message"])
	})
}

func TestInvoiceMutationRoutes(t *testing.T) {
	f := newRouterFixture(t)

	t.Run("successful create answers with a see other redirect", func(t *testing.T) {
		w := f.do(http.MethodPost, "/dashboard/invoices", url.Values{
			"customerId": {"c1"},
			"amount":     {"10.50"},
			"status":     {"paid"},
		}, true)
		require.Equal(t, http.StatusSeeOther, w.Code)
		require.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
		require.Len(t, f.invoiceStore.All(), 1)
	})

	t.Run("invalid form answers with the full field error map", func(t *testing.T) {
		w := f.do(http.MethodPost, "/dashboard/invoices", url.Values{
			"amount": {"-3"},
		}, true)
		require.Equal(t, http.StatusBadRequest, w.Code)

		var outcome dto.MutationOutcome
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
		require.Equal(t, service.MsgCreateMissingFields, outcome.Message)
		require.Equal(t, []string{dto.MsgSelectCustomer}, outcome.Errors[dto.FieldCustomerID])
		require.Equal(t, []string{dto.MsgAmountTooSmall}, outcome.Errors[dto.FieldAmount])
		require.Equal(t, []string{dto.MsgSelectStatus}, outcome.Errors[dto.FieldStatus])
	})

	t.Run("update and delete round trip", func(t *testing.T) {
		require.NotEmpty(t, f.invoiceStore.All())
		id := f.invoiceStore.All()[0].ID

		w := f.do(http.MethodPost, "/dashboard/invoices/"+id, url.Values{
			"customerId": {"c1"},
			"amount":     {"99"},
			"status":     {"pending"},
		}, true)
		require.Equal(t, http.StatusSeeOther, w.Code)

		updated, err := f.invoiceStore.Get(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, int64(9900), updated.Amount)

		w = f.do(http.MethodDelete, "/dashboard/invoices/"+id, nil, true)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.False(t, f.invoiceStore.HasInvoice(id))
	})
}
