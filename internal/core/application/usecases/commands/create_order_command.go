package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order.
// The recipient and deliveryman are referenced by id and owned externally;
// the optional signature reference is normally absent at creation time.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	recipientID   kernel.UUID
	deliverymanID kernel.UUID
	signatureID   *kernel.UUID
	product       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that all identifiers are valid and the product description is
// not empty. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	recipientID kernel.UUID,
	deliverymanID kernel.UUID,
	signatureID *kernel.UUID,
	product string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRecipientID(recipientID),
		cmd.setDeliverymanID(deliverymanID),
		cmd.setSignatureID(signatureID),
		cmd.setProduct(product),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RecipientID returns the addressee reference.
func (c CreateOrderCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

// DeliverymanID returns the courier reference.
func (c CreateOrderCommand) DeliverymanID() kernel.UUID {
	return c.deliverymanID
}

// SignatureID returns the optional proof-of-delivery artifact reference.
func (c CreateOrderCommand) SignatureID() *kernel.UUID {
	return c.signatureID
}

// Product returns the description of the item being delivered.
func (c CreateOrderCommand) Product() string {
	return c.product
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	c.recipientID = recipientID
	return nil
}

func (c *CreateOrderCommand) setDeliverymanID(deliverymanID kernel.UUID) error {
	if err := deliverymanID.Validate(); err != nil {
		return err
	}
	c.deliverymanID = deliverymanID
	return nil
}

func (c *CreateOrderCommand) setSignatureID(signatureID *kernel.UUID) error {
	if signatureID == nil {
		return nil
	}
	if err := signatureID.Validate(); err != nil {
		return err
	}
	id := *signatureID
	c.signatureID = &id
	return nil
}

func (c *CreateOrderCommand) setProduct(product string) error {
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	c.product = product
	return nil
}
