// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, handling conversion between domain entities and database rows.
package orderrepo

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Recipient, deliveryman, and signature are stored as foreign keys; the
// read-side queries join the related tables on demand.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Product       string     `gorm:"not null"`
	RecipientID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	DeliverymanID *uuid.UUID `gorm:"type:uuid;index"`
	SignatureID   *uuid.UUID `gorm:"type:uuid"`
	StartDate     *time.Time
	EndDate       *time.Time
	CanceledAt    *time.Time `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// RecipientDTO represents the addressee table referenced by orders.
// Recipients are owned by an external collaborator; this service only
// reads them for display.
type RecipientDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Street       string
	StreetNumber string
	Complement   string
	Neighborhood string
	State        string
	City         string
	ZipCode      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the database table name for recipient entities.
func (RecipientDTO) TableName() string {
	return "recipients"
}

// DeliverymanDTO represents the courier table referenced by orders.
// A deliveryman may itself be soft-canceled; the cancellation timestamp is
// surfaced to callers but does not block referencing it from an order.
type DeliverymanDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name       string     `gorm:"not null"`
	Email      string     `gorm:"not null"`
	AvatarID   *uuid.UUID `gorm:"type:uuid"`
	CanceledAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName specifies the database table name for deliveryman entities.
func (DeliverymanDTO) TableName() string {
	return "deliverymen"
}

// FileDTO represents a stored artifact reference (avatar or signature).
// The blob itself lives in external storage; only path and URL are kept here.
type FileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Path      string    `gorm:"not null"`
	URL       string    `gorm:"column:url;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for file artifacts.
func (FileDTO) TableName() string {
	return "files"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:            aggregate.ID().Bytes(),
		Product:       aggregate.Product(),
		RecipientID:   aggregate.Recipient().Bytes(),
		DeliverymanID: optionalUUID(aggregate.Deliveryman()),
		SignatureID:   optionalUUID(aggregate.Signature()),
		StartDate:     aggregate.StartDate(),
		EndDate:       aggregate.EndDate(),
		CanceledAt:    aggregate.CanceledAt(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}
}

// toDomain converts a database row back to an order aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	recipientID, err := kernel.UUIDFromBytes(dto.RecipientID[:])
	if err != nil {
		return nil, err
	}

	deliverymanID, err := optionalKernelUUID(dto.DeliverymanID)
	if err != nil {
		return nil, err
	}

	signatureID, err := optionalKernelUUID(dto.SignatureID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		recipientID,
		deliverymanID,
		signatureID,
		dto.Product,
		dto.StartDate,
		dto.EndDate,
		dto.CanceledAt,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalKernelUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
