package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The repository owns referential integrity toward recipients, deliverymen,
// and file artifacts; the application layer never assembles joins itself.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Reports not-found when the order no longer exists in storage.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// When executed inside a transaction the row is locked for update, so a
	// Get/mutate/Update sequence against the same id is serialized per order.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
