package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/finvoice/finvoice/internal/domain/invoice"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository. A customer store
// may be attached so listing rows can be joined with customer details
// the way the SQL listing does.
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
	order    []string

	customers *InMemoryCustomerStore

	// Error injection for store-failure policy tests
	CreateErr error
	UpdateErr error
	DeleteErr error
}

func NewInMemoryInvoiceStore(customers *InMemoryCustomerStore) *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices:  make(map[string]*invoice.Invoice),
		customers: customers,
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	return &c
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := copyInvoice(inv)
	if stored.ID == "" {
		stored.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE)
	}
	s.invoices[stored.ID] = stored
	s.order = append(s.order, stored.ID)

	// Reflect the store-generated id back like RETURNING would
	inv.ID = stored.ID
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("Invoice with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.Filter) ([]*invoice.ListItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*invoice.ListItem, 0, len(s.invoices))
	for _, id := range s.order {
		inv, ok := s.invoices[id]
		if !ok {
			continue
		}
		item := s.toListItem(inv)
		if filter != nil && !matchesQuery(item, filter.Query) {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date.After(items[j].Date)
	})

	if filter != nil {
		offset := filter.GetOffset()
		if offset >= len(items) {
			return []*invoice.ListItem{}, nil
		}
		items = items[offset:]
		if limit := filter.GetLimit(); limit < len(items) {
			items = items[:limit]
		}
	}

	return items, nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, inv := range s.invoices {
		item := s.toListItem(inv)
		if filter != nil && !matchesQuery(item, filter.Query) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if s.UpdateErr != nil {
		return s.UpdateErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Zero rows affected is not an error, matching the SQL statement
	existing, ok := s.invoices[inv.ID]
	if !ok {
		return nil
	}

	existing.CustomerID = inv.CustomerID
	existing.Amount = inv.Amount
	existing.Status = inv.Status
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.invoices, id)
	return nil
}

// HasInvoice reports whether an invoice exists without copying it
func (s *InMemoryInvoiceStore) HasInvoice(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.invoices[id]
	return ok
}

// All returns every stored invoice in insertion order
func (s *InMemoryInvoiceStore) All() []*invoice.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*invoice.Invoice, 0, len(s.invoices))
	for _, id := range s.order {
		if inv, ok := s.invoices[id]; ok {
			out = append(out, copyInvoice(inv))
		}
	}
	return out
}

func (s *InMemoryInvoiceStore) toListItem(inv *invoice.Invoice) *invoice.ListItem {
	item := &invoice.ListItem{
		ID:         inv.ID,
		CustomerID: inv.CustomerID,
		Amount:     inv.Amount,
		Status:     inv.Status,
		Date:       inv.Date,
	}
	if s.customers != nil {
		if c, err := s.customers.Get(context.Background(), inv.CustomerID); err == nil {
			item.CustomerName = c.Name
			item.Email = c.Email
			item.ImageURL = c.ImageURL
		}
	}
	return item
}

func matchesQuery(item *invoice.ListItem, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(item.CustomerName), q) ||
		strings.Contains(strings.ToLower(item.Email), q) ||
		strings.Contains(strings.ToLower(string(item.Status)), q)
}
