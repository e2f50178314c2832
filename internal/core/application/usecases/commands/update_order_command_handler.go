package commands

import (
	"context"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/order"
	"shipping/internal/core/domain/services"
)

// UpdateOrderCommandHandler applies partial patches to existing orders.
// The patch runs inside a transaction: the row is locked on read, mutated
// through the aggregate, and written back, so concurrent patches against the
// same order are serialized by the store.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	views      OrderViewLoader
	clock      Clock
}

// NewUpdateOrderCommandHandler creates a handler for order patch operations.
func NewUpdateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	views OrderViewLoader,
	clock Clock,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		views:      views,
		clock:      clock,
	}
}

// Handle processes the patch command. Rejected with ErrOutsideOperatingWindow
// outside the window; fails with an ObjectNotFoundError when no order exists
// for the id. A canceled order rejects the patch terminally.
func (h *UpdateOrderCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateOrderCommand,
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

	if err = applyPatch(aggregate, cmd, now); err != nil {
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

// applyPatch pushes each supplied field through the aggregate so its own
// rules (required product, terminal cancellation) stay in force.
func applyPatch(aggregate *order.Order, cmd UpdateOrderCommand, now time.Time) error {
	if product := cmd.Product(); product != nil {
		if err := aggregate.ChangeProduct(*product, now); err != nil {
			return err
		}
	}
	if recipientID := cmd.RecipientID(); recipientID != nil {
		if err := aggregate.ChangeRecipient(*recipientID, now); err != nil {
			return err
		}
	}
	if deliverymanID := cmd.DeliverymanID(); deliverymanID != nil {
		if err := aggregate.AssignDeliveryman(*deliverymanID, now); err != nil {
			return err
		}
	}
	if signatureID := cmd.SignatureID(); signatureID != nil {
		if err := aggregate.AttachSignature(*signatureID, now); err != nil {
			return err
		}
	}
	if startDate := cmd.StartDate(); startDate != nil {
		if err := aggregate.MarkPickedUp(*startDate, now); err != nil {
			return err
		}
	}
	if endDate := cmd.EndDate(); endDate != nil {
		if err := aggregate.MarkDelivered(*endDate, now); err != nil {
			return err
		}
	}
	return nil
}
