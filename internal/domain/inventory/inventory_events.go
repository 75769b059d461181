package inventory

import (
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeStockItem = "StockItem"

// Event type constants
const (
	EventTypeStockDecremented = "StockDecremented"
	EventTypeStockReceived    = "StockReceived"
)

// StockDecrementedEvent is raised when stock is deducted for an approved order
type StockDecrementedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Remaining int64     `json:"remaining"`
}

// NewStockDecrementedEvent creates a new StockDecrementedEvent
func NewStockDecrementedEvent(item *StockItem, quantity int64) *StockDecrementedEvent {
	return &StockDecrementedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDecremented, AggregateTypeStockItem, item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		Remaining:       item.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockDecrementedEvent) EventType() string {
	return EventTypeStockDecremented
}

// StockReceivedEvent is raised when goods are received into stock
type StockReceivedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	OnHand    int64     `json:"on_hand"`
}

// NewStockReceivedEvent creates a new StockReceivedEvent
func NewStockReceivedEvent(item *StockItem, quantity int64) *StockReceivedEvent {
	return &StockReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockReceived, AggregateTypeStockItem, item.ID),
		ProductID:       item.ProductID,
		Quantity:        quantity,
		OnHand:          item.QuantityOnHand,
	}
}

// EventType returns the event type name
func (e *StockReceivedEvent) EventType() string {
	return EventTypeStockReceived
}
