package queries

import (
	"errors"

	"shipping/internal/pkg/guard"
)

// Pagination defaults applied when the caller supplies no (or nonsense) values.
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery retrieves the active orders page by page.
// Active means neither canceled nor delivered; results are ordered by
// product name ascending. Reads are never gated by the operating window.
type ListOrdersQuery struct {
	page    int
	perPage int

	guard guard.ConstructorGuard
}

// NewListOrdersQuery creates a paginated listing query.
// Page numbering is 1-based; values below 1 fall back to the defaults
// (page 1, 20 orders per page), mirroring the public API contract.
func NewListOrdersQuery(page, perPage int) ListOrdersQuery {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	return ListOrdersQuery{
		page:    page,
		perPage: perPage,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the query was created through the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

// Page returns the 1-based page number.
func (q ListOrdersQuery) Page() int {
	return q.page
}

// PerPage returns the page size.
func (q ListOrdersQuery) PerPage() int {
	return q.perPage
}

// Offset returns the number of rows skipped before this page.
func (q ListOrdersQuery) Offset() int {
	return (q.page - 1) * q.perPage
}
