package commands

import (
	"context"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/services"
)

// CancelOrderCommandHandler soft-cancels orders by stamping their
// cancellation timestamp. Canceled orders drop out of default listings and
// reject any further mutation.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	views      OrderViewLoader
	clock      Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	views OrderViewLoader,
	clock Clock,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		views:      views,
		clock:      clock,
	}
}

// Handle processes the cancellation. Rejected with ErrOutsideOperatingWindow
// outside the window; fails with an ObjectNotFoundError when no order exists
// for the id; fails terminally when the order is already canceled.
func (h *CancelOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CancelOrderCommand,
) (queries.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return queries.OrderView{}, err
	}

	now := h.clock.Now()
	if !services.IsWithinOperatingWindow(now) {
		return queries.OrderView{}, ErrOutsideOperatingWindow
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return queries.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return queries.OrderView{}, err
	}

	if err = aggregate.Cancel(now); err != nil {
		return queries.OrderView{}, err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return queries.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return queries.OrderView{}, err
	}

	return h.views.Load(ctx, cmd.OrderID())
}
