package billing

import (
	"context"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceRepository defines persistence operations for invoices.
// FindByOrderIDForUpdate and FindByIDForUpdate must take a row-level lock
// so concurrent payment recordings against one invoice serialize.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
	FindByOrderIDForUpdate(ctx context.Context, orderID uuid.UUID) (*Invoice, error)
	FindByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)
	FindByPaymentStatus(ctx context.Context, status PaymentStatus, filter shared.Filter) ([]Invoice, error)
	FindByRetailer(ctx context.Context, retailerID uuid.UUID, filter shared.Filter) ([]Invoice, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	SaveWithLock(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository reads the append-only payment ledger. Writes happen
// through Invoice saves; there is no update or delete.
type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Payment, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)
	FindByCollector(ctx context.Context, collectorID uuid.UUID, filter shared.Filter) ([]Payment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Payment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// DeliveryRepository defines persistence operations for delivery records
type DeliveryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Delivery, error)
	FindByDriver(ctx context.Context, driverID uuid.UUID, filter shared.Filter) ([]Delivery, error)
	FindByStatus(ctx context.Context, status DeliveryStatus, filter shared.Filter) ([]Delivery, error)
	Save(ctx context.Context, delivery *Delivery) error
}
