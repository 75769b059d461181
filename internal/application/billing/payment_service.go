package billing

import (
	"context"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentService reconciles payments against invoices. Recording is the
// only write path; everything else reads the derived state the invoice
// aggregate maintains.
type PaymentService struct {
	txScope        TransactionScope
	invoiceRepo    billing.InvoiceRepository
	paymentRepo    billing.PaymentRepository
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	txScope TransactionScope,
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
) *PaymentService {
	return &PaymentService{
		txScope:     txScope,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordPayment appends a payment to an invoice inside one transaction.
// The invoice row is locked so concurrent collections against the same
// invoice serialize; the whole operation rolls back on any failure.
func (s *PaymentService) RecordPayment(ctx context.Context, actor identity.Actor, req RecordPaymentRequest) (*PaymentResponse, error) {
	if actor.IsSalesRep() {
		return nil, shared.ErrForbidden
	}

	var (
		invoice *billing.Invoice
		payment *billing.Payment
	)

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoice, err = repos.InvoiceRepo().FindByIDForUpdate(ctx, req.InvoiceID)
		if err != nil {
			return err
		}

		payment, err = invoice.RecordPayment(req.Amount, billing.PaymentMethod(req.Mode), req.TransactionID, actor.ID)
		if err != nil {
			return err
		}

		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, invoice)

	response := ToPaymentResponse(payment)
	return &response, nil
}

// GetInvoice retrieves an invoice with its payment ledger
func (s *PaymentService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// GetInvoiceByOrder retrieves the invoice generated for an order
func (s *PaymentService) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(invoice)
	return &response, nil
}

// ListInvoices retrieves invoices with optional payment status filtering
func (s *PaymentService) ListInvoices(ctx context.Context, filter InvoiceListFilter) ([]InvoiceListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	var (
		invoices []billing.Invoice
		err      error
	)
	switch {
	case filter.PaymentStatus != nil:
		invoices, err = s.invoiceRepo.FindByPaymentStatus(ctx, *filter.PaymentStatus, domainFilter)
	case filter.RetailerID != nil:
		invoices, err = s.invoiceRepo.FindByRetailer(ctx, *filter.RetailerID, domainFilter)
	default:
		invoices, err = s.invoiceRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.invoiceRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInvoiceListItemResponses(invoices), total, nil
}

// ListPayments retrieves ledger entries, optionally scoped to one collector
func (s *PaymentService) ListPayments(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}

	var (
		payments []billing.Payment
		err      error
	)
	if filter.CollectorID != nil {
		payments, err = s.paymentRepo.FindByCollector(ctx, *filter.CollectorID, domainFilter)
	} else {
		payments, err = s.paymentRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentResponses(payments), total, nil
}

// ListPaymentsForInvoice retrieves one invoice's full ledger
func (s *PaymentService) ListPaymentsForInvoice(ctx context.Context, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

func (s *PaymentService) publishEvents(ctx context.Context, invoice *billing.Invoice) {
	if s.eventPublisher == nil || invoice == nil {
		return
	}
	events := invoice.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	invoice.ClearDomainEvents()
}
