package http

import (
	"context"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
)

// The server depends on narrow per-operation interfaces rather than the
// concrete handler types so tests can substitute them.

type CreateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (queries.OrderView, error)
}

type UpdateOrderHandler interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderCommand) (queries.OrderView, error)
}

type CancelOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CancelOrderCommand) (queries.OrderView, error)
}

type ListOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListOrdersQuery) ([]queries.OrderView, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (queries.OrderView, error)
}
