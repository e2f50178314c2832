package notifications

import (
	"time"

	"shipping/internal/core/application/usecases/queries"
)

// OrderCreatedEvent is the message published to the broker when an order
// has been registered. It carries the denormalized view so consumers do
// not need to call back into the service.
type OrderCreatedEvent struct {
	OrderID     string     `json:"order_id"`
	Product     string     `json:"product"`
	Recipient   *Party     `json:"recipient"`
	Deliveryman *Party     `json:"deliveryman"`
	OccurredAt  time.Time  `json:"occurred_at"`
	CanceledAt  *time.Time `json:"canceled_at"`
}

// Party identifies a person attached to the order.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewOrderCreatedEvent builds the broker payload from an order view.
func NewOrderCreatedEvent(view queries.OrderView, occurredAt time.Time) OrderCreatedEvent {
	event := OrderCreatedEvent{
		OrderID:    view.ID.String(),
		Product:    view.Product,
		OccurredAt: occurredAt,
		CanceledAt: view.CanceledAt,
	}

	if view.Recipient != nil {
		event.Recipient = &Party{ID: view.Recipient.ID.String(), Name: view.Recipient.Name}
	}
	if view.Deliveryman != nil {
		event.Deliveryman = &Party{ID: view.Deliveryman.ID.String(), Name: view.Deliveryman.Name}
	}

	return event
}
