package billing

import (
	"context"

	"github.com/distribops/backend/internal/domain/billing"
)

// TransactionScope provides transactional access to the invoice repository.
// Payment recording is a read-modify-write on the invoice row; the scope
// guarantees the row lock and the ledger append commit together.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides the repositories involved in payment
// recording, all bound to the same database transaction.
type TransactionalRepositories interface {
	InvoiceRepo() billing.InvoiceRepository
}

// NoOpTransactionScope runs the function without a real transaction.
type NoOpTransactionScope struct {
	invoiceRepo billing.InvoiceRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repository.
func NewNoOpTransactionScope(invoiceRepo billing.InvoiceRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{invoiceRepo: invoiceRepo}
}

// Execute runs the function without transaction semantics.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository.
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository {
	return s.invoiceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
