package domain

// defaultPageSize applies when a caller passes PaginationParams with no
// page size, so a zero value never turns into an empty LIMIT 0 query.
const defaultPageSize = 20

// PaginationParams holds offset-based pagination for response listings.
type PaginationParams struct {
	Page     int
	PageSize int
}

// Limit returns the effective page size, substituting the default for
// missing or nonsensical values.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return defaultPageSize
	}
	return p.PageSize
}

// Offset returns the 0-based row offset for the current page.
func (p PaginationParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
