package inventory

import (
	"time"

	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/google/uuid"
)

// ReceiveStockRequest represents a goods-in delivery from the bottler
type ReceiveStockRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// StockListFilter represents query filters for listing stock
type StockListFilter struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

// StockItemResponse represents a stock row in API responses
type StockItemResponse struct {
	ID             uuid.UUID `json:"id"`
	ProductID      uuid.UUID `json:"product_id"`
	QuantityOnHand int64     `json:"quantity_on_hand"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// ToStockItemResponse converts a domain stock item to a response DTO
func ToStockItemResponse(item *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:             item.ID,
		ProductID:      item.ProductID,
		QuantityOnHand: item.QuantityOnHand,
		UpdatedAt:      item.UpdatedAt,
		Version:        item.Version,
	}
}

// ToStockItemResponses converts a slice of stock items to response DTOs
func ToStockItemResponses(items []inventory.StockItem) []StockItemResponse {
	responses := make([]StockItemResponse, len(items))
	for i := range items {
		responses[i] = ToStockItemResponse(&items[i])
	}
	return responses
}
