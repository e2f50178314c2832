package commands

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand represents a partial patch against an existing order.
// Any subset of the mutable fields may be supplied; nil fields are left
// untouched. No cross-field validation is applied beyond what the order
// aggregate itself enforces.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	product       *string
	recipientID   *kernel.UUID
	deliverymanID *kernel.UUID
	signatureID   *kernel.UUID
	startDate     *time.Time
	endDate       *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateOrderCommand creates a patch command for the given order.
// An empty patch is legal and results in a persisted no-op.
func NewUpdateOrderCommand(
	orderID kernel.UUID,
	product *string,
	recipientID *kernel.UUID,
	deliverymanID *kernel.UUID,
	signatureID *kernel.UUID,
	startDate *time.Time,
	endDate *time.Time,
) (UpdateOrderCommand, error) {
	cmd := UpdateOrderCommand{
		startDate: startDate,
		endDate:   endDate,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProduct(product),
		cmd.setOptionalID(&cmd.recipientID, recipientID, "recipientId"),
		cmd.setOptionalID(&cmd.deliverymanID, deliverymanID, "deliverymanId"),
		cmd.setOptionalID(&cmd.signatureID, signatureID, "signatureId"),
	); err != nil {
		return UpdateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being patched.
func (c UpdateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Product returns the replacement product description, or nil.
func (c UpdateOrderCommand) Product() *string {
	return c.product
}

// RecipientID returns the replacement recipient reference, or nil.
func (c UpdateOrderCommand) RecipientID() *kernel.UUID {
	return c.recipientID
}

// DeliverymanID returns the replacement deliveryman reference, or nil.
func (c UpdateOrderCommand) DeliverymanID() *kernel.UUID {
	return c.deliverymanID
}

// SignatureID returns the replacement signature reference, or nil.
func (c UpdateOrderCommand) SignatureID() *kernel.UUID {
	return c.signatureID
}

// StartDate returns the pickup timestamp to record, or nil.
func (c UpdateOrderCommand) StartDate() *time.Time {
	return c.startDate
}

// EndDate returns the delivery-completion timestamp to record, or nil.
func (c UpdateOrderCommand) EndDate() *time.Time {
	return c.endDate
}

func (c *UpdateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderCommand) setProduct(product *string) error {
	if product == nil {
		return nil
	}
	if *product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	value := *product
	c.product = &value
	return nil
}

func (c *UpdateOrderCommand) setOptionalID(target **kernel.UUID, id *kernel.UUID, paramName string) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	value := *id
	*target = &value
	return nil
}
