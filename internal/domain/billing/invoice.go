package billing

import (
	"fmt"
	"time"

	"github.com/distribops/backend/internal/domain/partner"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/shared/valueobject"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents how much of an invoice has been settled
type PaymentStatus string

const (
	PaymentStatusPending       PaymentStatus = "PENDING"        // No payment applied yet
	PaymentStatusPartiallyPaid PaymentStatus = "PARTIALLY_PAID" // 0 < paid < total
	PaymentStatusPaid          PaymentStatus = "PAID"           // Fully settled, balance = 0
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartiallyPaid, PaymentStatusPaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// Invoice is the settlement record generated exactly once per approved order.
// The retailer details and amounts are frozen at generation; only the payment
// ledger and its derived fields (paidAmount, balanceAmount, paymentStatus)
// change afterwards.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber   string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber     string          `gorm:"type:varchar(50);not null"`
	RetailerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	RetailerName    string          `gorm:"type:varchar(200);not null"`
	RetailerAddress string          `gorm:"type:varchar(500)"`
	RetailerPhone   string          `gorm:"type:varchar(20)"`
	RetailerGSTIN   string          `gorm:"type:varchar(15)"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TaxableValue    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GSTTotal        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CGST            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	SGST            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAmount      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	BalanceAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	InvoiceDate     time.Time       `gorm:"not null"`
	Payments        []Payment       `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// GenerateFromOrder creates the invoice for an approved order. Line totals are
// tax-inclusive; the taxable value is recovered per line from each item's own
// GST rate and summed, so mixed-rate orders decompose correctly. GST splits
// evenly into CGST and SGST, SGST taking any rounding remainder.
func GenerateFromOrder(invoiceNumber string, order *trade.Order, retailer partner.Snapshot) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if len(order.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order has no items to invoice")
	}
	if retailer.Name == "" {
		return nil, shared.NewDomainError("INVALID_RETAILER", "Retailer snapshot name cannot be empty")
	}

	taxable := decimal.Zero
	for _, item := range order.Items {
		rate, err := valueobject.NewGSTRate(item.GSTPercentage)
		if err != nil {
			return nil, err
		}
		breakup := rate.SplitInclusive(valueobject.NewMoneyINR(item.TotalPrice))
		taxable = taxable.Add(breakup.TaxableValue)
	}

	total := order.TotalAmount.Round(2)
	taxable = taxable.Round(2)
	gstTotal := total.Sub(taxable)
	cgst := gstTotal.Div(decimal.NewFromInt(2)).Round(2)
	sgst := gstTotal.Sub(cgst)

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		RetailerID:        order.RetailerID,
		RetailerName:      retailer.Name,
		RetailerAddress:   retailer.Address,
		RetailerPhone:     retailer.Phone,
		RetailerGSTIN:     retailer.GSTIN,
		TotalAmount:       total,
		TaxableValue:      taxable,
		GSTTotal:          gstTotal,
		CGST:              cgst,
		SGST:              sgst,
		PaidAmount:        decimal.Zero,
		BalanceAmount:     total,
		PaymentStatus:     PaymentStatusPending,
		InvoiceDate:       time.Now(),
		Payments:          []Payment{},
	}

	invoice.AddDomainEvent(NewInvoiceGeneratedEvent(invoice))

	return invoice, nil
}

// RecordPayment appends a payment to the ledger and re-derives the paid
// amount, balance and status. Payments exceeding the outstanding balance are
// rejected whole; partial application is never silent. The amount is
// normalized to 2 places up front so the ledger entry and the derived
// paid/balance fields always carry the same figure.
func (inv *Invoice) RecordPayment(amount decimal.Decimal, mode PaymentMethod, transactionID string, collectedBy uuid.UUID) (*Payment, error) {
	if inv.PaymentStatus == PaymentStatusPaid {
		return nil, shared.NewDomainError("INVOICE_ALREADY_PAID",
			fmt.Sprintf("Invoice %s is already fully paid", inv.InvoiceNumber))
	}

	amount = amount.Round(2)

	payment, err := newPayment(inv.ID, amount, mode, transactionID, collectedBy)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(inv.BalanceAmount) {
		return nil, shared.NewDomainError("OVERPAYMENT_REJECTED",
			fmt.Sprintf("Payment %s exceeds outstanding balance %s", amount.StringFixed(2), inv.BalanceAmount.StringFixed(2)))
	}

	inv.Payments = append(inv.Payments, *payment)
	inv.PaidAmount = inv.PaidAmount.Add(amount)
	inv.BalanceAmount = inv.TotalAmount.Sub(inv.PaidAmount)
	inv.deriveStatus()
	inv.UpdatedAt = time.Now()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewPaymentRecordedEvent(inv, payment))
	if inv.IsPaid() {
		inv.AddDomainEvent(NewInvoicePaidEvent(inv))
	}

	return payment, nil
}

func (inv *Invoice) deriveStatus() {
	switch {
	case inv.PaidAmount.IsZero():
		inv.PaymentStatus = PaymentStatusPending
	case inv.BalanceAmount.IsZero():
		inv.PaymentStatus = PaymentStatusPaid
	default:
		inv.PaymentStatus = PaymentStatusPartiallyPaid
	}
}

// IsPaid returns true when the invoice is fully settled
func (inv *Invoice) IsPaid() bool {
	return inv.PaymentStatus == PaymentStatusPaid
}

// GetTotalAmountMoney returns the invoice total as Money
func (inv *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.TotalAmount)
}

// GetBalanceAmountMoney returns the outstanding balance as Money
func (inv *Invoice) GetBalanceAmountMoney() valueobject.Money {
	return valueobject.NewMoneyINR(inv.BalanceAmount)
}

// PaymentCount returns the number of payments on the ledger
func (inv *Invoice) PaymentCount() int {
	return len(inv.Payments)
}
