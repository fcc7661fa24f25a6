package domain

// PageRequest holds pagination parameters for list operations.
type PageRequest struct {
	MaxResults int
	Page       int
}

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Limit returns the effective page size.
func (p PageRequest) Limit() int {
	if p.MaxResults <= 0 {
		return defaultPageSize
	}
	if p.MaxResults > maxPageSize {
		return maxPageSize
	}
	return p.MaxResults
}

// Offset returns the row offset for the requested page.
func (p PageRequest) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit()
}
