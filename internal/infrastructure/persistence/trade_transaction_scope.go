package persistence

import (
	"context"

	apptrade "github.com/distribops/backend/internal/application/trade"
	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/distribops/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTradeTransactionScope implements the order workflow TransactionScope
// using GORM transactions. Approval (stock decrement + invoice generation),
// dispatch (cash gate + delivery creation) and delivery each run atomically
// through it.
type GormTradeTransactionScope struct {
	db *gorm.DB
}

// NewGormTradeTransactionScope creates a new GormTradeTransactionScope.
func NewGormTradeTransactionScope(db *gorm.DB) *GormTradeTransactionScope {
	return &GormTradeTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTradeTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTradeRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTradeRepositories provides access to the order workflow repositories
// within one transaction.
type gormTradeRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTradeRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// StockRepo returns the stock item repository scoped to the current transaction.
func (r *gormTradeRepositories) StockRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

// InvoiceRepo returns the invoice repository scoped to the current transaction.
func (r *gormTradeRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

// DeliveryRepo returns the delivery repository scoped to the current transaction.
func (r *gormTradeRepositories) DeliveryRepo() billing.DeliveryRepository {
	return NewGormDeliveryRepository(r.tx)
}

// Ensure GormTradeTransactionScope implements TransactionScope
var _ apptrade.TransactionScope = (*GormTradeTransactionScope)(nil)

// Ensure gormTradeRepositories implements TransactionalRepositories
var _ apptrade.TransactionalRepositories = (*gormTradeRepositories)(nil)
