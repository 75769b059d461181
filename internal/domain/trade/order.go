package trade

import (
	"fmt"
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a distributor order
type OrderStatus string

const (
	OrderStatusRequested  OrderStatus = "REQUESTED"
	OrderStatusApproved   OrderStatus = "APPROVED"
	OrderStatusRejected   OrderStatus = "REJECTED"
	OrderStatusDispatched OrderStatus = "DISPATCHED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusRequested, OrderStatusApproved, OrderStatusRejected,
		OrderStatusDispatched, OrderStatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusRequested:
		return target == OrderStatusApproved || target == OrderStatusRejected
	case OrderStatusApproved:
		return target == OrderStatusDispatched
	case OrderStatusDispatched:
		return target == OrderStatusDelivered
	case OrderStatusRejected, OrderStatusDelivered:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for terminal states
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDelivered
}

// PaymentMode represents how an order will be settled
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeCredit PaymentMode = "CREDIT"
)

// IsValid checks if the payment mode is valid
func (m PaymentMode) IsValid() bool {
	return m == PaymentModeCash || m == PaymentModeCredit
}

// GPSCoordinate is the opaque location captured with an order.
// The core stores and echoes it; it is never interpreted.
type GPSCoordinate struct {
	Latitude  string `gorm:"type:varchar(32)" json:"latitude"`
	Longitude string `gorm:"type:varchar(32)" json:"longitude"`
}

// OrderItem is an immutable line-item snapshot taken at order creation.
// Product name, price and GST rate are copied from the product so later
// catalog changes never rewrite order history.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      int64           `gorm:"not null"`
	PricePerUnit  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// ItemSnapshot carries the product data captured into an order item.
// The creating service resolves it from the catalog at order time.
type ItemSnapshot struct {
	ProductID     uuid.UUID
	ProductName   string
	Quantity      int64
	UnitPrice     valueobject.Money
	GSTPercentage decimal.Decimal
}

func newOrderItem(orderID uuid.UUID, snap ItemSnapshot) (*OrderItem, error) {
	if snap.ProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if snap.ProductName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if snap.Quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if snap.UnitPrice.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}

	price := snap.UnitPrice.Amount().Round(2)
	return &OrderItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     snap.ProductID,
		ProductName:   snap.ProductName,
		Quantity:      snap.Quantity,
		PricePerUnit:  price,
		GSTPercentage: snap.GSTPercentage,
		TotalPrice:    price.Mul(decimal.NewFromInt(snap.Quantity)),
		CreatedAt:     time.Now(),
	}, nil
}

// GetTotalPriceMoney returns the line total as Money
func (i *OrderItem) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyINR(i.TotalPrice)
}

// Order is the aggregate root for the distributor order lifecycle:
// Requested -> Approved -> Dispatched -> Delivered, with Rejected as the
// alternative terminal outcome of review. Items and total are frozen at
// creation; stock deduction and invoice generation are orchestrated by
// the application service during approval.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber  string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	RetailerID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	RetailerName string        `gorm:"type:varchar(200);not null"`
	SalesRepID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	DriverID     *uuid.UUID    `gorm:"type:uuid;index"`
	Items        []OrderItem   `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status       OrderStatus   `gorm:"type:varchar(20);not null;default:'REQUESTED';index"`
	PaymentMode  PaymentMode   `gorm:"type:varchar(10);not null"`
	GPS          GPSCoordinate `gorm:"embedded;embeddedPrefix:gps_"`
	RejectReason string        `gorm:"type:varchar(500)"`
	ApprovedAt   *time.Time
	DispatchedAt *time.Time
	DeliveredAt  *time.Time
	OverriddenBy *uuid.UUID `gorm:"type:uuid"` // Admin who force-dispatched past the cash gate
	OverrideAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in REQUESTED status with its line items.
// Items are snapshotted and totalled here; the set is immutable afterwards.
func NewOrder(orderNumber string, retailerID uuid.UUID, retailerName string, salesRepID uuid.UUID, paymentMode PaymentMode, gps GPSCoordinate, items []ItemSnapshot) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if retailerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RETAILER", "Retailer ID cannot be empty")
	}
	if retailerName == "" {
		return nil, shared.NewDomainError("INVALID_RETAILER_NAME", "Retailer name cannot be empty")
	}
	if salesRepID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALES_REP", "Sales rep ID cannot be empty")
	}
	if !paymentMode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_MODE", "Payment mode must be CASH or CREDIT")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Order must contain at least one item")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		RetailerID:        retailerID,
		RetailerName:      retailerName,
		SalesRepID:        salesRepID,
		Status:            OrderStatusRequested,
		PaymentMode:       paymentMode,
		GPS:               gps,
		Items:             make([]OrderItem, 0, len(items)),
		TotalAmount:       decimal.Zero,
	}

	seen := make(map[uuid.UUID]bool, len(items))
	total := decimal.Zero
	for _, snap := range items {
		if seen[snap.ProductID] {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product appears more than once in order")
		}
		seen[snap.ProductID] = true

		item, err := newOrderItem(order.ID, snap)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
		total = total.Add(item.TotalPrice)
	}
	order.TotalAmount = total

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// Approve transitions the order to APPROVED. Stock sufficiency checks and
// the decrement itself are performed by the application service inside the
// same transaction, before this transition is persisted.
func (o *Order) Approve() error {
	if !o.Status.CanTransitionTo(OrderStatusApproved) {
		return invalidTransition(o.Status, OrderStatusApproved)
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderApprovedEvent(o))

	return nil
}

// Reject transitions the order to REJECTED with a reason. Terminal.
func (o *Order) Reject(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusRejected) {
		return invalidTransition(o.Status, OrderStatusRejected)
	}

	now := time.Now()
	o.Status = OrderStatusRejected
	o.RejectReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderRejectedEvent(o))

	return nil
}

// AssignDriver sets the delivering driver. Allowed once the order is
// approved; reassignment before delivery is permitted.
func (o *Order) AssignDriver(driverID uuid.UUID) error {
	if driverID == uuid.Nil {
		return shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}
	if o.Status != OrderStatusApproved && o.Status != OrderStatusDispatched {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot assign driver to order in %s status", o.Status))
	}

	o.DriverID = &driverID
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// Dispatch transitions the order to DISPATCHED. The cash-payment gate
// (invoice fully paid for CASH orders) is enforced by the application
// service before calling this.
func (o *Order) Dispatch() error {
	if !o.Status.CanTransitionTo(OrderStatusDispatched) {
		return invalidTransition(o.Status, OrderStatusDispatched)
	}
	if o.DriverID == nil {
		return shared.NewDomainError("NO_DRIVER", "Driver must be assigned before dispatch")
	}

	now := time.Now()
	o.Status = OrderStatusDispatched
	o.DispatchedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDispatchedEvent(o, false))

	return nil
}

// ForceDispatch is the admin override: assigns the driver and dispatches
// regardless of the cash-payment gate, stamping who overrode it.
func (o *Order) ForceDispatch(driverID, overriddenBy uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusDispatched) {
		return invalidTransition(o.Status, OrderStatusDispatched)
	}
	if driverID == uuid.Nil {
		return shared.NewDomainError("INVALID_DRIVER", "Driver ID cannot be empty")
	}
	if overriddenBy == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Overriding admin ID cannot be empty")
	}

	now := time.Now()
	o.DriverID = &driverID
	o.Status = OrderStatusDispatched
	o.DispatchedAt = &now
	o.OverriddenBy = &overriddenBy
	o.OverrideAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDispatchedEvent(o, true))

	return nil
}

// Deliver transitions the order to DELIVERED and records the delivery time.
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(OrderStatusDelivered) {
		return invalidTransition(o.Status, OrderStatusDelivered)
	}

	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderDeliveredEvent(o))

	return nil
}

func invalidTransition(from, to OrderStatus) error {
	return shared.NewDomainError("INVALID_TRANSITION",
		fmt.Sprintf("Cannot transition order from %s to %s", from, to))
}

// GetTotalAmountMoney returns the order total as Money
func (o *Order) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(o.TotalAmount)
}

// IsCash returns true for cash-settled orders
func (o *Order) IsCash() bool {
	return o.PaymentMode == PaymentModeCash
}

// IsRequested returns true if the order awaits review
func (o *Order) IsRequested() bool {
	return o.Status == OrderStatusRequested
}

// IsApproved returns true if the order is approved
func (o *Order) IsApproved() bool {
	return o.Status == OrderStatusApproved
}

// IsDispatched returns true if the order is out for delivery
func (o *Order) IsDispatched() bool {
	return o.Status == OrderStatusDispatched
}

// IsDelivered returns true if the order has been delivered
func (o *Order) IsDelivered() bool {
	return o.Status == OrderStatusDelivered
}

// WasOverridden returns true if dispatch bypassed the cash gate
func (o *Order) WasOverridden() bool {
	return o.OverriddenBy != nil
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// GetItemByProduct returns the line item for a product, or nil
func (o *Order) GetItemByProduct(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}
