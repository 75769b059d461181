package persistence

import (
	"context"
	"errors"

	"github.com/distribops/backend/internal/domain/partner"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRetailerRepository implements RetailerRepository using GORM
type GormRetailerRepository struct {
	db *gorm.DB
}

// NewGormRetailerRepository creates a new GormRetailerRepository
func NewGormRetailerRepository(db *gorm.DB) *GormRetailerRepository {
	return &GormRetailerRepository{db: db}
}

// FindByID finds a retailer by its ID
func (r *GormRetailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Retailer, error) {
	var retailer partner.Retailer
	if err := r.db.WithContext(ctx).First(&retailer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &retailer, nil
}

// FindAll finds retailers matching the filter
func (r *GormRetailerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Retailer, error) {
	var retailers []partner.Retailer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Retailer{}), filter)

	if err := query.Find(&retailers).Error; err != nil {
		return nil, err
	}
	return retailers, nil
}

// Count counts retailers matching the filter
func (r *GormRetailerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Retailer{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a retailer
func (r *GormRetailerRepository) Save(ctx context.Context, retailer *partner.Retailer) error {
	return r.db.WithContext(ctx).Save(retailer).Error
}

// Delete deletes a retailer
func (r *GormRetailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Retailer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormRetailerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RetailerSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRetailerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

// Ensure GormRetailerRepository implements RetailerRepository
var _ partner.RetailerRepository = (*GormRetailerRepository)(nil)
