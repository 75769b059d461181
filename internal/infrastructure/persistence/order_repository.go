package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, with line items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderNumber finds an order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	var order trade.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&order, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.Order{}), filter)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySalesRep finds orders created by a sales rep
func (r *GormOrderRepository) FindBySalesRep(ctx context.Context, salesRepID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("sales_rep_id = ?", salesRepID),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByDriver finds orders assigned to a driver
func (r *GormOrderRepository) FindByDriver(ctx context.Context, driverID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("driver_id = ?", driverID),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindUnassignedApproved finds approved orders with no driver yet.
// This is the pool drivers claim deliveries from.
func (r *GormOrderRepository) FindUnassignedApproved(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("status = ? AND driver_id IS NULL", trade.OrderStatusApproved),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatuses finds orders in any of the given statuses
func (r *GormOrderRepository) FindByStatuses(ctx context.Context, statuses []trade.OrderStatus, filter shared.Filter) ([]trade.Order, error) {
	if len(statuses) == 0 {
		return []trade.Order{}, nil
	}

	var orders []trade.Order
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Where("status IN ?", statuses),
		filter,
	)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&trade.Order{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts orders in a status
func (r *GormOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnassignedApproved counts the approved orders with no driver yet
func (r *GormOrderRepository) CountUnassignedApproved(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("status = ? AND driver_id IS NULL", trade.OrderStatusApproved).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its line items
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// SaveWithLock saves lifecycle fields with optimistic locking (checks version).
// Line items are immutable after creation so they are not written here.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":        order.Status,
			"driver_id":     order.DriverID,
			"reject_reason": order.RejectReason,
			"approved_at":   order.ApprovedAt,
			"dispatched_at": order.DispatchedAt,
			"delivered_at":  order.DeliveredAt,
			"overridden_by": order.OverriddenBy,
			"override_at":   order.OverrideAt,
			"version":       order.Version,
			"updated_at":    order.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Order was modified by another transaction")
	}
	return nil
}

// NextOrderNumber allocates the next order number as ORD-YYYYMMDD-NNNN,
// numbering within the current day. The unique index on order_number
// catches the rare collision between concurrent allocations.
func (r *GormOrderRepository) NextOrderNumber(ctx context.Context) (string, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&trade.Order{}).
		Where("created_at >= ?", dayStart).
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), count+1), nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("order_number ILIKE ? OR retailer_name ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			query = query.Where("status IN ?", value)
		case "retailer_id":
			query = query.Where("retailer_id = ?", value)
		case "sales_rep_id":
			query = query.Where("sales_rep_id = ?", value)
		case "driver_id":
			query = query.Where("driver_id = ?", value)
		case "payment_mode":
			query = query.Where("payment_mode = ?", value)
		}
	}

	return query
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
