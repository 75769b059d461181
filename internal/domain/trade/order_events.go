package trade

import (
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated    = "OrderCreated"
	EventTypeOrderApproved   = "OrderApproved"
	EventTypeOrderRejected   = "OrderRejected"
	EventTypeOrderDispatched = "OrderDispatched"
	EventTypeOrderDelivered  = "OrderDelivered"
)

// OrderItemInfo represents item information carried in events
type OrderItemInfo struct {
	ItemID      uuid.UUID       `json:"item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

func itemInfos(order *Order) []OrderItemInfo {
	infos := make([]OrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		infos[i] = OrderItemInfo{
			ItemID:      item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.PricePerUnit,
			TotalPrice:  item.TotalPrice,
		}
	}
	return infos
}

// OrderCreatedEvent is raised when a new order is placed
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID       `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	RetailerID   uuid.UUID       `json:"retailer_id"`
	SalesRepID   uuid.UUID       `json:"sales_rep_id"`
	PaymentMode  PaymentMode     `json:"payment_mode"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Items        []OrderItemInfo `json:"items"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		RetailerID:      order.RetailerID,
		SalesRepID:      order.SalesRepID,
		PaymentMode:     order.PaymentMode,
		TotalAmount:     order.TotalAmount,
		Items:           itemInfos(order),
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderApprovedEvent is raised when an order passes admin review.
// Stock has already been decremented and the invoice generated within
// the same transaction by the time this event is published.
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	RetailerID  uuid.UUID       `json:"retailer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []OrderItemInfo `json:"items"`
}

// NewOrderApprovedEvent creates a new OrderApprovedEvent
func NewOrderApprovedEvent(order *Order) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderApproved, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		RetailerID:      order.RetailerID,
		TotalAmount:     order.TotalAmount,
		Items:           itemInfos(order),
	}
}

// EventType returns the event type name
func (e *OrderApprovedEvent) EventType() string {
	return EventTypeOrderApproved
}

// OrderRejectedEvent is raised when an order is rejected at review
type OrderRejectedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Reason      string    `json:"reason"`
}

// NewOrderRejectedEvent creates a new OrderRejectedEvent
func NewOrderRejectedEvent(order *Order) *OrderRejectedEvent {
	return &OrderRejectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderRejected, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		Reason:          order.RejectReason,
	}
}

// EventType returns the event type name
func (e *OrderRejectedEvent) EventType() string {
	return EventTypeOrderRejected
}

// OrderDispatchedEvent is raised when an order goes out for delivery.
// Overridden marks admin force-dispatches that bypassed the cash gate.
type OrderDispatchedEvent struct {
	shared.BaseDomainEvent
	OrderID      uuid.UUID  `json:"order_id"`
	OrderNumber  string     `json:"order_number"`
	DriverID     *uuid.UUID `json:"driver_id"`
	Overridden   bool       `json:"overridden"`
	OverriddenBy *uuid.UUID `json:"overridden_by,omitempty"`
}

// NewOrderDispatchedEvent creates a new OrderDispatchedEvent
func NewOrderDispatchedEvent(order *Order, overridden bool) *OrderDispatchedEvent {
	return &OrderDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDispatched, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		DriverID:        order.DriverID,
		Overridden:      overridden,
		OverriddenBy:    order.OverriddenBy,
	}
}

// EventType returns the event type name
func (e *OrderDispatchedEvent) EventType() string {
	return EventTypeOrderDispatched
}

// OrderDeliveredEvent is raised when the driver confirms delivery
type OrderDeliveredEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID  `json:"order_id"`
	OrderNumber string     `json:"order_number"`
	DriverID    *uuid.UUID `json:"driver_id"`
}

// NewOrderDeliveredEvent creates a new OrderDeliveredEvent
func NewOrderDeliveredEvent(order *Order) *OrderDeliveredEvent {
	return &OrderDeliveredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDelivered, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		DriverID:        order.DriverID,
	}
}

// EventType returns the event type name
func (e *OrderDeliveredEvent) EventType() string {
	return EventTypeOrderDelivered
}
