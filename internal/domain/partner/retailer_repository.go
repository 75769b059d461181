package partner

import (
	"context"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RetailerRepository defines persistence operations for retailers
type RetailerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Retailer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Retailer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, retailer *Retailer) error
	Delete(ctx context.Context, id uuid.UUID) error
}
