package order

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderIsCanceled is returned when a mutation is attempted on an order
	// whose cancellation timestamp is already set. Cancellation is terminal.
	ErrOrderIsCanceled = errors.New("order is canceled and can no longer be changed")
)

// Order represents a physical delivery order in the system. It is the aggregate
// root that tracks the order from creation through pickup, delivery, and
// cancellation.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and recipient reference
//   - Product description must not be empty
//   - An order is active iff it has no cancellation and no delivery timestamp
//   - Cancellation is terminal: a canceled order rejects any further mutation
//   - Can only be created through NewOrder or RestoreOrder
//
// The deliveryman reference is optional until assignment; the signature artifact
// reference is optional until delivery. Nothing here forces signature and
// delivery timestamp to be set together; that pairing is the caller's concern.
type Order struct {
	id            kernel.UUID
	product       string
	recipientID   kernel.UUID
	deliverymanID *kernel.UUID
	signatureID   *kernel.UUID

	// startDate is when the deliveryman picked the product up; nil until pickup.
	startDate *time.Time
	// endDate is when delivery completed; nil until delivered.
	endDate *time.Time
	// canceledAt marks soft cancellation; nil while the order is live.
	canceledAt *time.Time

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order with validation. This is the only way to create
// an order that did not come from persistence.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - recipientID: the addressee the product is delivered to (required)
//   - deliverymanID: the courier the order is assigned to (optional)
//   - signatureID: proof-of-delivery artifact reference (optional)
//   - product: free-text description of the delivered item (required)
//   - now: creation timestamp, recorded as both createdAt and updatedAt
//
// Returns a validation error if any required parameter is missing or invalid.
func NewOrder(
	id kernel.UUID,
	recipientID kernel.UUID,
	deliverymanID *kernel.UUID,
	signatureID *kernel.UUID,
	product string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRecipient(recipientID),
		o.setDeliveryman(deliverymanID),
		o.setSignature(signatureID),
		o.setProduct(product),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder it accepts the full lifecycle state, including timestamps
// that only mutations can produce. Intended for repository use only.
func RestoreOrder(
	id kernel.UUID,
	recipientID kernel.UUID,
	deliverymanID *kernel.UUID,
	signatureID *kernel.UUID,
	product string,
	startDate *time.Time,
	endDate *time.Time,
	canceledAt *time.Time,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		startDate:     startDate,
		endDate:       endDate,
		canceledAt:    canceledAt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRecipient(recipientID),
		o.setDeliveryman(deliverymanID),
		o.setSignature(signatureID),
		o.setProduct(product),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed through a factory
// function. This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Product returns the description of the item being delivered.
func (o *Order) Product() string {
	return o.product
}

// Recipient returns the identifier of the addressee.
func (o *Order) Recipient() kernel.UUID {
	return o.recipientID
}

// Deliveryman returns the identifier of the assigned deliveryman,
// or nil while the order is unassigned.
func (o *Order) Deliveryman() *kernel.UUID {
	return o.deliverymanID
}

// Signature returns the identifier of the proof-of-delivery artifact,
// or nil while the order is undelivered.
func (o *Order) Signature() *kernel.UUID {
	return o.signatureID
}

// StartDate returns the pickup timestamp, or nil before pickup.
func (o *Order) StartDate() *time.Time {
	return o.startDate
}

// EndDate returns the delivery-completion timestamp, or nil before delivery.
func (o *Order) EndDate() *time.Time {
	return o.endDate
}

// CanceledAt returns the cancellation timestamp, or nil while the order is live.
func (o *Order) CanceledAt() *time.Time {
	return o.canceledAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// UpdatedAt returns the last-mutation timestamp.
func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// IsActive reports whether the order appears in default listings:
// no cancellation and no completed delivery.
func (o *Order) IsActive() bool {
	return o.canceledAt == nil && o.endDate == nil
}

// IsCanceled reports whether the order has been soft-canceled.
func (o *Order) IsCanceled() bool {
	return o.canceledAt != nil
}

// ChangeProduct replaces the product description.
// Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) ChangeProduct(product string, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setProduct(product); err != nil {
		return err
	}

	o.touch(at)
	return nil
}

// ChangeRecipient re-addresses the order to another recipient.
// Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) ChangeRecipient(recipientID kernel.UUID, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := o.setRecipient(recipientID); err != nil {
		return err
	}

	o.touch(at)
	return nil
}

// AssignDeliveryman assigns or reassigns the courier responsible for the order.
// Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) AssignDeliveryman(deliverymanID kernel.UUID, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := deliverymanID.Validate(); err != nil {
		return err
	}

	o.deliverymanID = &deliverymanID
	o.touch(at)
	return nil
}

// AttachSignature records the proof-of-delivery artifact reference.
// Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) AttachSignature(signatureID kernel.UUID, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}
	if err := signatureID.Validate(); err != nil {
		return err
	}

	o.signatureID = &signatureID
	o.touch(at)
	return nil
}

// MarkPickedUp records the moment the deliveryman picked the product up.
// Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) MarkPickedUp(pickedUpAt time.Time, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}

	o.startDate = &pickedUpAt
	o.touch(at)
	return nil
}

// MarkDelivered records the moment delivery completed. The order drops out of
// active listings afterwards. Fails with ErrOrderIsCanceled on a canceled order.
func (o *Order) MarkDelivered(deliveredAt time.Time, at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}

	o.endDate = &deliveredAt
	o.touch(at)
	return nil
}

// Cancel soft-cancels the order at the given time. Cancellation is terminal:
// a second Cancel, or any other mutation afterwards, fails with ErrOrderIsCanceled.
func (o *Order) Cancel(at time.Time) error {
	if err := o.ensureMutable(); err != nil {
		return err
	}

	canceledAt := at
	o.canceledAt = &canceledAt
	o.touch(at)
	return nil
}

// ensureMutable rejects mutations once the order is canceled.
func (o *Order) ensureMutable() error {
	if o.canceledAt != nil {
		return ErrOrderIsCanceled
	}
	return nil
}

func (o *Order) touch(at time.Time) {
	o.updatedAt = at
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setRecipient(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}
	o.recipientID = recipientID
	return nil
}

func (o *Order) setDeliveryman(deliverymanID *kernel.UUID) error {
	if deliverymanID == nil {
		o.deliverymanID = nil
		return nil
	}
	if err := deliverymanID.Validate(); err != nil {
		return err
	}
	id := *deliverymanID
	o.deliverymanID = &id
	return nil
}

func (o *Order) setSignature(signatureID *kernel.UUID) error {
	if signatureID == nil {
		o.signatureID = nil
		return nil
	}
	if err := signatureID.Validate(); err != nil {
		return err
	}
	id := *signatureID
	o.signatureID = &id
	return nil
}

func (o *Order) setProduct(product string) error {
	if product == "" {
		return errs.NewValueIsRequiredError("product")
	}
	o.product = product
	return nil
}
