package types

const (
	FilterDefaultLimit = 6
	FilterMaxLimit     = 100
)

// Filter is the pagination window for listing queries. The default limit
// matches one dashboard page of invoices.
type Filter struct {
	Query  string `form:"query" json:"query"`
	Page   int    `form:"page" json:"page"`
	Limit  int    `form:"limit" json:"limit"`
	Offset int    `form:"-" json:"-"`
}

func (f *Filter) GetLimit() int {
	if f.Limit <= 0 {
		return FilterDefaultLimit
	}
	if f.Limit > FilterMaxLimit {
		return FilterMaxLimit
	}
	return f.Limit
}

func (f *Filter) GetOffset() int {
	if f.Offset > 0 {
		return f.Offset
	}
	if f.Page > 1 {
		return (f.Page - 1) * f.GetLimit()
	}
	return 0
}

// ListResponse is the common envelope for paginated list endpoints
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
