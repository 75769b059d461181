package inventory

import (
	"context"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItemRepository defines persistence operations for stock items.
// FindByProductIDForUpdate must acquire a row-level lock so that
// check-then-decrement sequences serialize across concurrent approvals.
type StockItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockItem, error)
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	FindByProductIDForUpdate(ctx context.Context, productID uuid.UUID) (*StockItem, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockItem, error)
	FindBelowThreshold(ctx context.Context, threshold int64) ([]StockItem, error)
	Save(ctx context.Context, item *StockItem) error
	SaveWithLock(ctx context.Context, item *StockItem) error
}
