package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/finvoice/finvoice/internal/domain/customer"
	ierr "github.com/finvoice/finvoice/internal/errors"
	"github.com/finvoice/finvoice/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	mu        sync.RWMutex
	customers map[string]*customer.Customer
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		customers: make(map[string]*customer.Customer),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// Add seeds a customer into the store, assigning a prefixed id when the
// caller left it empty. The generated id is reflected back.
func (s *InMemoryCustomerStore) Add(c *customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == "" {
		c.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER)
	}
	s.customers[c.ID] = copyCustomer(c)
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ierr.NewError("customer not found").
			WithHintf("Customer with ID %s was not found", id).
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.Filter) ([]*customer.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*customer.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		if filter != nil && !customerMatches(c, filter.Query) {
			continue
		}
		out = append(out, copyCustomer(c))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	if filter != nil {
		offset := filter.GetOffset()
		if offset >= len(out) {
			return []*customer.Customer{}, nil
		}
		out = out[offset:]
		if limit := filter.GetLimit(); limit < len(out) {
			out = out[:limit]
		}
	}

	return out, nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.Filter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, c := range s.customers {
		if filter != nil && !customerMatches(c, filter.Query) {
			continue
		}
		count++
	}
	return count, nil
}

func customerMatches(c *customer.Customer, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q)
}
