package service

import (
	"context"
	"time"

	"github.com/finvoice/finvoice/internal/api/dto"
	"github.com/finvoice/finvoice/internal/cache"
	"github.com/finvoice/finvoice/internal/types"
)

const customerListCacheExpiry = 30 * time.Minute

type CustomerService interface {
	ListCustomers(ctx context.Context, filter *types.Filter) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{ServiceParams: params}
}

func (s *customerService) ListCustomers(ctx context.Context, filter *types.Filter) (*dto.ListCustomersResponse, error) {
	if filter == nil {
		filter = &types.Filter{}
	}

	cacheKey := cache.GenerateKey(cache.PrefixCustomer, "list", filter.Query, filter.Page, filter.GetLimit())
	if cached, found := s.Cache.Get(ctx, cacheKey); found {
		if resp, ok := cached.(*dto.ListCustomersResponse); ok {
			return resp, nil
		}
	}

	customers, err := s.CustomerRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.CustomerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.NewListCustomersResponse(customers, total)
	s.Cache.Set(ctx, cacheKey, resp, customerListCacheExpiry)
	return resp, nil
}
