package persistence

import (
	"context"
	"errors"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID, with its payment ledger
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, r.db, "id = ?", id)
}

// FindByIDForUpdate finds an invoice by ID with a row lock. Must run inside
// a transaction; concurrent payment recordings serialize on this lock.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "id = ?", id)
}

// FindByOrderID finds the invoice generated for an order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, r.db, "order_id = ?", orderID)
}

// FindByOrderIDForUpdate finds the invoice for an order with a row lock
func (r *GormInvoiceRepository) FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), "order_id = ?", orderID)
}

// FindByInvoiceNumber finds an invoice by its invoice number
func (r *GormInvoiceRepository) FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*billing.Invoice, error) {
	return r.findOne(ctx, r.db, "invoice_number = ?", invoiceNumber)
}

func (r *GormInvoiceRepository) findOne(ctx context.Context, db *gorm.DB, cond string, arg interface{}) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := db.WithContext(ctx).
		Preload("Payments").
		First(&invoice, cond, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(r.db.WithContext(ctx).Model(&billing.Invoice{}), filter)

	if err := query.Preload("Payments").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByPaymentStatus finds invoices in a settlement state
func (r *GormInvoiceRepository) FindByPaymentStatus(ctx context.Context, status billing.PaymentStatus, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).
			Where("payment_status = ?", status),
		filter,
	)

	if err := query.Preload("Payments").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByRetailer finds invoices issued to a retailer
func (r *GormInvoiceRepository) FindByRetailer(ctx context.Context, retailerID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&billing.Invoice{}).
			Where("retailer_id = ?", retailerID),
		filter,
	)

	if err := query.Preload("Payments").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&billing.Invoice{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice. New payments appended to the ledger
// are inserted through the association; existing payment rows are never
// updated.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Save(invoice).Error
}

// SaveWithLock saves settlement fields with optimistic locking (checks version)
// and appends any new payment rows.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(invoice).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]interface{}{
			"paid_amount":    invoice.PaidAmount,
			"balance_amount": invoice.BalanceAmount,
			"payment_status": invoice.PaymentStatus,
			"version":        invoice.Version,
			"updated_at":     invoice.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_FAILED", "Invoice was modified by another transaction")
	}

	for idx := range invoice.Payments {
		payment := &invoice.Payments[idx]
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(payment).Error; err != nil {
			return err
		}
	}
	return nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "invoice_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ? OR order_number ILIKE ? OR retailer_name ILIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "retailer_id":
			query = query.Where("retailer_id = ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
