package trade

import (
	"time"

	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest represents a request to place a distributor order
type CreateOrderRequest struct {
	RetailerID  uuid.UUID              `json:"retailer_id" binding:"required"`
	Items       []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	PaymentMode string                 `json:"payment_mode" binding:"required,oneof=CASH CREDIT"`
	Latitude    string                 `json:"latitude"`
	Longitude   string                 `json:"longitude"`
}

// CreateOrderItemInput represents one requested line
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateOrderStatusRequest represents a state machine transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=APPROVED REJECTED DISPATCHED DELIVERED"`
	Reason string `json:"reason" binding:"max=500"`
}

// AssignDriverRequest represents a driver assignment request
type AssignDriverRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

// ForceDispatchRequest represents the admin override for the cash gate
type ForceDispatchRequest struct {
	DriverID uuid.UUID `json:"driver_id" binding:"required"`
}

// OrderListFilter represents query filters for listing orders
type OrderListFilter struct {
	Status   *trade.OrderStatus  `form:"status"`
	Statuses []trade.OrderStatus `form:"statuses"`
	Search   string              `form:"search"`
	Page     int                 `form:"page"`
	PageSize int                 `form:"page_size"`
	OrderBy  string              `form:"order_by"`
	OrderDir string              `form:"order_dir"`
}

// OrderItemResponse represents an order line in responses
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int64           `json:"quantity"`
	PricePerUnit  decimal.Decimal `json:"price_per_unit"`
	GSTPercentage decimal.Decimal `json:"gst_percentage"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID           uuid.UUID           `json:"id"`
	OrderNumber  string              `json:"order_number"`
	RetailerID   uuid.UUID           `json:"retailer_id"`
	RetailerName string              `json:"retailer_name"`
	SalesRepID   uuid.UUID           `json:"sales_rep_id"`
	DriverID     *uuid.UUID          `json:"driver_id"`
	Items        []OrderItemResponse `json:"items"`
	ItemCount    int                 `json:"item_count"`
	TotalAmount  decimal.Decimal     `json:"total_amount"`
	Status       string              `json:"status"`
	PaymentMode  string              `json:"payment_mode"`
	Latitude     string              `json:"latitude"`
	Longitude    string              `json:"longitude"`
	RejectReason string              `json:"reject_reason,omitempty"`
	ApprovedAt   *time.Time          `json:"approved_at"`
	DispatchedAt *time.Time          `json:"dispatched_at"`
	DeliveredAt  *time.Time          `json:"delivered_at"`
	Overridden   bool                `json:"overridden"`
	OverriddenBy *uuid.UUID          `json:"overridden_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Version      int                 `json:"version"`
}

// OrderListItemResponse is the condensed order shape for list endpoints
type OrderListItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	OrderNumber  string          `json:"order_number"`
	RetailerID   uuid.UUID       `json:"retailer_id"`
	RetailerName string          `json:"retailer_name"`
	DriverID     *uuid.UUID      `json:"driver_id"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Status       string          `json:"status"`
	PaymentMode  string          `json:"payment_mode"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToOrderItemResponse converts a domain order item to a response DTO
func ToOrderItemResponse(item *trade.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		ProductName:   item.ProductName,
		Quantity:      item.Quantity,
		PricePerUnit:  item.PricePerUnit,
		GSTPercentage: item.GSTPercentage,
		TotalPrice:    item.TotalPrice,
	}
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i := range order.Items {
		items[i] = ToOrderItemResponse(&order.Items[i])
	}

	return OrderResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		RetailerID:   order.RetailerID,
		RetailerName: order.RetailerName,
		SalesRepID:   order.SalesRepID,
		DriverID:     order.DriverID,
		Items:        items,
		ItemCount:    order.ItemCount(),
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
		PaymentMode:  string(order.PaymentMode),
		Latitude:     order.GPS.Latitude,
		Longitude:    order.GPS.Longitude,
		RejectReason: order.RejectReason,
		ApprovedAt:   order.ApprovedAt,
		DispatchedAt: order.DispatchedAt,
		DeliveredAt:  order.DeliveredAt,
		Overridden:   order.WasOverridden(),
		OverriddenBy: order.OverriddenBy,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
		Version:      order.Version,
	}
}

// ToOrderListItemResponse converts a domain order to a list item DTO
func ToOrderListItemResponse(order *trade.Order) OrderListItemResponse {
	return OrderListItemResponse{
		ID:           order.ID,
		OrderNumber:  order.OrderNumber,
		RetailerID:   order.RetailerID,
		RetailerName: order.RetailerName,
		DriverID:     order.DriverID,
		ItemCount:    order.ItemCount(),
		TotalAmount:  order.TotalAmount,
		Status:       string(order.Status),
		PaymentMode:  string(order.PaymentMode),
		CreatedAt:    order.CreatedAt,
	}
}

// ToOrderListItemResponses converts a slice of orders to list item DTOs
func ToOrderListItemResponses(orders []trade.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderListItemResponse(&orders[i])
	}
	return responses
}
