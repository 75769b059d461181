package billing

import (
	"time"

	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodUPI          PaymentMethod = "UPI"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodCheque       PaymentMethod = "CHEQUE"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodUPI, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// RequiresTransactionID returns true for methods that carry an external
// reference. Cash collections have none.
func (m PaymentMethod) RequiresTransactionID() bool {
	return m != PaymentMethodCash
}

// Payment is one entry in an invoice's append-only settlement ledger.
// Entries are created through Invoice.RecordPayment and never modified
// or removed afterwards.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Mode          PaymentMethod   `gorm:"type:varchar(20);not null"`
	TransactionID string          `gorm:"type:varchar(100)"`
	CollectedByID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

func newPayment(invoiceID uuid.UUID, amount decimal.Decimal, mode PaymentMethod, transactionID string, collectedBy uuid.UUID) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be CASH, UPI, BANK_TRANSFER or CHEQUE")
	}
	if mode.RequiresTransactionID() && transactionID == "" {
		return nil, shared.NewDomainError("MISSING_TRANSACTION_ID", "Transaction ID is required for non-cash payments")
	}
	if collectedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COLLECTOR", "Collector ID cannot be empty")
	}

	return &Payment{
		ID:            uuid.New(),
		InvoiceID:     invoiceID,
		Amount:        amount.Round(2),
		Mode:          mode,
		TransactionID: transactionID,
		CollectedByID: collectedBy,
		CreatedAt:     time.Now(),
	}, nil
}
