package trade

import (
	"context"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindBySalesRep(ctx context.Context, salesRepID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByDriver(ctx context.Context, driverID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindUnassignedApproved(ctx context.Context, filter shared.Filter) ([]Order, error)
	FindByStatuses(ctx context.Context, statuses []OrderStatus, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
	CountUnassignedApproved(ctx context.Context) (int64, error)
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	NextOrderNumber(ctx context.Context) (string, error)
}
