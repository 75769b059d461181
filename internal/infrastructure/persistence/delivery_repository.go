package persistence

import (
	"context"
	"errors"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM
type GormDeliveryRepository struct {
	db *gorm.DB
}

// NewGormDeliveryRepository creates a new GormDeliveryRepository
func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

// FindByID finds a delivery by its ID
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Delivery, error) {
	var delivery billing.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindByOrderID finds the delivery record for an order
func (r *GormDeliveryRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Delivery, error) {
	var delivery billing.Delivery
	if err := r.db.WithContext(ctx).First(&delivery, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &delivery, nil
}

// FindByDriver finds deliveries assigned to a driver
func (r *GormDeliveryRepository) FindByDriver(ctx context.Context, driverID uuid.UUID, filter shared.Filter) ([]billing.Delivery, error) {
	var deliveries []billing.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Delivery{}).
			Where("driver_id = ?", driverID),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// FindByStatus finds deliveries in a status
func (r *GormDeliveryRepository) FindByStatus(ctx context.Context, status billing.DeliveryStatus, filter shared.Filter) ([]billing.Delivery, error) {
	var deliveries []billing.Delivery
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Delivery{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

// Save creates or updates a delivery record
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery *billing.Delivery) error {
	return r.db.WithContext(ctx).Save(delivery).Error
}

// applyFilter applies filter options including pagination and ordering
func (r *GormDeliveryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, DeliverySortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormDeliveryRepository implements DeliveryRepository
var _ billing.DeliveryRepository = (*GormDeliveryRepository)(nil)
