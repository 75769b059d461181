package inventory

import (
	"fmt"
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItem tracks the on-hand quantity for a single product.
// It is the aggregate root of the inventory ledger and the only place
// stock is mutated. Order approval decrements through DecrementStock
// under a row lock; quantity never goes negative.
type StockItem struct {
	shared.BaseAggregateRoot
	ProductID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	QuantityOnHand int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates an empty stock record for a product
func NewStockItem(productID uuid.UUID) (*StockItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		QuantityOnHand:    0,
	}, nil
}

// CanFulfill returns true if the on-hand quantity covers the requested quantity
func (s *StockItem) CanFulfill(quantity int64) bool {
	return s.QuantityOnHand >= quantity
}

// DecrementStock removes quantity from stock. Fails with INSUFFICIENT_STOCK
// when on-hand quantity does not cover the request, leaving the item untouched.
func (s *StockItem) DecrementStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement quantity must be positive")
	}
	if !s.CanFulfill(quantity) {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for product %s: required %d, available %d", s.ProductID, quantity, s.QuantityOnHand))
	}

	s.QuantityOnHand -= quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockDecrementedEvent(s, quantity))

	return nil
}

// IncrementStock adds received goods to stock. This is the goods-in path;
// no order transition invokes it.
func (s *StockItem) IncrementStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Increment quantity must be positive")
	}

	s.QuantityOnHand += quantity
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewStockReceivedEvent(s, quantity))

	return nil
}

// IsBelowThreshold returns true when on-hand quantity is under the given
// low-stock threshold (injected from configuration).
func (s *StockItem) IsBelowThreshold(threshold int64) bool {
	return threshold > 0 && s.QuantityOnHand < threshold
}
