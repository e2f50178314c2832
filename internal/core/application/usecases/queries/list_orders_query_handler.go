package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler retrieves active orders with their related entities.
// Filters out canceled and delivered orders to provide the default listing
// the public API exposes.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListOrdersQueryHandler creates a handler for active-order listings.
// Requires a GORM database connection for query execution.
func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

// Handle executes the listing query and returns the requested page.
// Orders are sorted by product name ascending; each view carries the
// recipient address, the deliveryman identity with avatar, and the
// signature artifact when present.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(orderViewSelect+`
		WHERE o.canceled_at IS NULL AND o.end_date IS NULL
		ORDER BY o.product
		LIMIT ? OFFSET ?
	`, query.PerPage(), query.Offset()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrderViews(rows)
}
