package helpers

import (
	"net/http"
	"strconv"

	"invitepage/internal/domain"
)

// MaxPageSize caps page_size so a single responses query cannot pull an
// unbounded guest list.
const MaxPageSize = 100

// ParsePagination reads page and page_size from the request query string.
// Missing or invalid values are left at zero; domain.PaginationParams
// normalizes those to its defaults when computing LIMIT/OFFSET.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	var p domain.PaginationParams
	if v, err := strconv.Atoi(q.Get("page")); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil && v >= 1 {
		p.PageSize = min(v, MaxPageSize)
	}
	return p
}

// PaginationMeta is the pagination metadata included in paginated list responses.
// swagger:model PaginationMeta
type PaginationMeta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPaginationMeta builds PaginationMeta from a parsed params value and the
// total row count, reporting the effective page and page size actually used.
func NewPaginationMeta(p domain.PaginationParams, total int) PaginationMeta {
	page := p.Page
	if page < 1 {
		page = 1
	}
	size := p.Limit()
	return PaginationMeta{
		Page:       page,
		PageSize:   size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
}
