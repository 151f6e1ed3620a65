package utils

import (
	"net/http"
	"strconv"
)

const maxPageSize = 100

type QueryOptions struct {
	Page   int
	Limit  int
	Sort   string
	Order  int // 1 ascending, -1 descending
	Search string
}

// ParseQueryOptions reads page/limit/sort/order/search, falling back to
// page 1, limit 10 and defaultSort descending.
func ParseQueryOptions(r *http.Request, defaultSort string) QueryOptions {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	limit, _ := strconv.Atoi(q.Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	sort := q.Get("sort")
	if sort == "" {
		sort = defaultSort
	}

	order := -1
	if q.Get("order") == "asc" {
		order = 1
	}

	return QueryOptions{
		Page:   page,
		Limit:  limit,
		Sort:   sort,
		Order:  order,
		Search: q.Get("search"),
	}
}

func (q QueryOptions) Skip() int64 {
	return int64((q.Page - 1) * q.Limit)
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination computes listing metadata from the page geometry.
func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		Limit:       limit,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}
