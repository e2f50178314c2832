package commands

import (
	"context"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creation is gated by the daily operating window, persisted transactionally,
// and followed by an order-created notification job carrying the fully
// loaded order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	views      OrderViewLoader
	dispatcher NotificationDispatcher
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	views OrderViewLoader,
	dispatcher NotificationDispatcher,
	clock Clock,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		views:      views,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Handle processes the order creation command.
//
// The operating-window gate runs before any storage access and rejects the
// command with ErrOutsideOperatingWindow. After the insert commits, the order
// is reloaded with its related entities; a reload failure fails the operation
// even though the row was inserted. Enqueueing the notification can never
// fail the create; the dispatcher absorbs delivery problems.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd CreateOrderCommand,
) (queries.OrderView, error) {
	if err := cmd.Validate(); err != nil {
		return queries.OrderView{}, err
	}

	now := h.clock.Now()
	if !services.IsWithinOperatingWindow(now) {
		return queries.OrderView{}, ErrOutsideOperatingWindow
	}

	deliverymanID := cmd.DeliverymanID()
	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.RecipientID(),
		&deliverymanID,
		cmd.SignatureID(),
		cmd.Product(),
		now,
	)
	if err != nil {
		return queries.OrderView{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return queries.OrderView{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return queries.OrderView{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return queries.OrderView{}, err
	}

	view, err := h.views.Load(ctx, aggregate.ID())
	if err != nil {
		return queries.OrderView{}, err
	}

	h.dispatcher.EnqueueOrderCreated(view)

	return view, nil
}
