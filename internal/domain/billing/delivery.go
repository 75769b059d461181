package billing

import (
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// DeliveryStatus represents the progress of a dispatched order
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "PENDING"
	DeliveryStatusInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryStatusDelivered DeliveryStatus = "DELIVERED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusInTransit, DeliveryStatusDelivered:
		return true
	}
	return false
}

// Delivery tracks one invoice's journey from dispatch to handover.
// Created in IN_TRANSIT when the order is dispatched and closed when the
// driver confirms delivery.
type Delivery struct {
	shared.BaseAggregateRoot
	OrderID      uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	InvoiceID    uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex"`
	DriverID     uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status       DeliveryStatus      `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	GPS          trade.GPSCoordinate `gorm:"embedded;embeddedPrefix:gps_"`
	DeliveryTime *time.Time
}

// TableName returns the table name for GORM
func (Delivery) TableName() string {
	return "deliveries"
}

// NewDelivery creates a delivery record at dispatch time
func NewDelivery(orderID, invoiceID, driverID uuid.UUID, gps trade.GPSCoordinate) (*Delivery, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if driverID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}

	return &Delivery{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		InvoiceID:         invoiceID,
		DriverID:          driverID,
		Status:            DeliveryStatusInTransit,
		GPS:               gps,
	}, nil
}

// Complete closes the delivery and records the handover time
func (d *Delivery) Complete() error {
	if d.Status == DeliveryStatusDelivered {
		return shared.NewDomainError("ALREADY_DELIVERED", "Delivery is already completed")
	}

	now := time.Now()
	d.Status = DeliveryStatusDelivered
	d.DeliveryTime = &now
	d.UpdatedAt = now
	d.IncrementVersion()

	return nil
}

// IsCompleted returns true once the handover is recorded
func (d *Delivery) IsCompleted() bool {
	return d.Status == DeliveryStatusDelivered
}
