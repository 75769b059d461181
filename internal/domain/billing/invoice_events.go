package billing

import (
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceGenerated = "InvoiceGenerated"
	EventTypePaymentRecorded  = "PaymentRecorded"
	EventTypeInvoicePaid      = "InvoicePaid"
)

// InvoiceGeneratedEvent is raised when an approved order gets its invoice
type InvoiceGeneratedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       uuid.UUID       `json:"order_id"`
	RetailerID    uuid.UUID       `json:"retailer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TaxableValue  decimal.Decimal `json:"taxable_value"`
	GSTTotal      decimal.Decimal `json:"gst_total"`
}

// NewInvoiceGeneratedEvent creates a new InvoiceGeneratedEvent
func NewInvoiceGeneratedEvent(invoice *Invoice) *InvoiceGeneratedEvent {
	return &InvoiceGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceGenerated, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		RetailerID:      invoice.RetailerID,
		TotalAmount:     invoice.TotalAmount,
		TaxableValue:    invoice.TaxableValue,
		GSTTotal:        invoice.GSTTotal,
	}
}

// EventType returns the event type name
func (e *InvoiceGeneratedEvent) EventType() string {
	return EventTypeInvoiceGenerated
}

// PaymentRecordedEvent is raised for every payment appended to the ledger
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	PaymentID     uuid.UUID       `json:"payment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          PaymentMethod   `json:"mode"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	CollectedByID uuid.UUID       `json:"collected_by_id"`
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(invoice *Invoice, payment *Payment) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentRecorded, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		Mode:            payment.Mode,
		PaidAmount:      invoice.PaidAmount,
		BalanceAmount:   invoice.BalanceAmount,
		CollectedByID:   payment.CollectedByID,
	}
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return EventTypePaymentRecorded
}

// InvoicePaidEvent is raised when the balance reaches zero. For cash orders
// this is what unlocks dispatch.
type InvoicePaidEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderID       uuid.UUID       `json:"order_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// NewInvoicePaidEvent creates a new InvoicePaidEvent
func NewInvoicePaidEvent(invoice *Invoice) *InvoicePaidEvent {
	return &InvoicePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaid, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		TotalAmount:     invoice.TotalAmount,
	}
}

// EventType returns the event type name
func (e *InvoicePaidEvent) EventType() string {
	return EventTypeInvoicePaid
}
