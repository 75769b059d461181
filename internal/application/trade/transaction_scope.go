package trade

import (
	"context"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/inventory"
	"github.com/distribops/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories an
// order transition touches. When a function is executed within a scope, all
// repository operations share one database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories involved in
// order approval and dispatch. All repositories returned share the same
// underlying database transaction.
//
// Aggregate boundary notes:
//   - OrderRepo: the Order aggregate, including its item rows.
//   - StockRepo: stock rows locked FOR UPDATE during approval so the
//     check-then-decrement sequence serializes across concurrent approvals.
//   - InvoiceRepo: invoice generation at approval and the paid-check at
//     dispatch read through the same transaction.
//   - DeliveryRepo: the delivery record created at dispatch.
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	StockRepo() inventory.StockItemRepository
	InvoiceRepo() billing.InvoiceRepository
	DeliveryRepo() billing.DeliveryRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are in-memory fakes.
type NoOpTransactionScope struct {
	orderRepo    trade.OrderRepository
	stockRepo    inventory.StockItemRepository
	invoiceRepo  billing.InvoiceRepository
	deliveryRepo billing.DeliveryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories.
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	stockRepo inventory.StockItemRepository,
	invoiceRepo billing.InvoiceRepository,
	deliveryRepo billing.DeliveryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:    orderRepo,
		stockRepo:    stockRepo,
		invoiceRepo:  invoiceRepo,
		deliveryRepo: deliveryRepo,
	}
}

// Execute runs the function without transaction semantics.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository.
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository {
	return s.orderRepo
}

// StockRepo returns the stock item repository.
func (s *NoOpTransactionScope) StockRepo() inventory.StockItemRepository {
	return s.stockRepo
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

// DeliveryRepo returns the delivery repository.
func (s *NoOpTransactionScope) DeliveryRepo() billing.DeliveryRepository {
	return s.deliveryRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
