package billing

import (
	"time"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest represents a request to record a payment against an invoice
type RecordPaymentRequest struct {
	InvoiceID     uuid.UUID       `json:"invoice_id" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Mode          string          `json:"mode" binding:"required,oneof=CASH UPI BANK_TRANSFER CHEQUE"`
	TransactionID string          `json:"transaction_id" binding:"max=100"`
}

// InvoiceListFilter represents query filters for listing invoices
type InvoiceListFilter struct {
	PaymentStatus *billing.PaymentStatus `form:"payment_status"`
	RetailerID    *uuid.UUID             `form:"retailer_id"`
	Search        string                 `form:"search"`
	Page          int                    `form:"page"`
	PageSize      int                    `form:"page_size"`
	OrderBy       string                 `form:"order_by"`
	OrderDir      string                 `form:"order_dir"`
}

// PaymentListFilter represents query filters for listing payments
type PaymentListFilter struct {
	CollectorID *uuid.UUID `form:"collector_id"`
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
}

// PaymentResponse represents a payment ledger entry in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	Amount        decimal.Decimal `json:"amount"`
	Mode          string          `json:"mode"`
	TransactionID string          `json:"transaction_id,omitempty"`
	CollectedByID uuid.UUID       `json:"collected_by_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID         `json:"id"`
	InvoiceNumber   string            `json:"invoice_number"`
	OrderID         uuid.UUID         `json:"order_id"`
	OrderNumber     string            `json:"order_number"`
	RetailerID      uuid.UUID         `json:"retailer_id"`
	RetailerName    string            `json:"retailer_name"`
	RetailerAddress string            `json:"retailer_address"`
	RetailerPhone   string            `json:"retailer_phone"`
	RetailerGSTIN   string            `json:"retailer_gstin"`
	TotalAmount     decimal.Decimal   `json:"total_amount"`
	TaxableValue    decimal.Decimal   `json:"taxable_value"`
	GSTTotal        decimal.Decimal   `json:"gst_total"`
	CGST            decimal.Decimal   `json:"cgst"`
	SGST            decimal.Decimal   `json:"sgst"`
	PaidAmount      decimal.Decimal   `json:"paid_amount"`
	BalanceAmount   decimal.Decimal   `json:"balance_amount"`
	PaymentStatus   string            `json:"payment_status"`
	InvoiceDate     time.Time         `json:"invoice_date"`
	Payments        []PaymentResponse `json:"payments"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Version         int               `json:"version"`
}

// InvoiceListItemResponse is the condensed invoice shape for list endpoints
type InvoiceListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	OrderNumber   string          `json:"order_number"`
	RetailerName  string          `json:"retailer_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	PaymentStatus string          `json:"payment_status"`
	InvoiceDate   time.Time       `json:"invoice_date"`
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(payment *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Amount:        payment.Amount,
		Mode:          string(payment.Mode),
		TransactionID: payment.TransactionID,
		CollectedByID: payment.CollectedByID,
		CreatedAt:     payment.CreatedAt,
	}
}

// ToInvoiceResponse converts a domain invoice to a response DTO
func ToInvoiceResponse(invoice *billing.Invoice) InvoiceResponse {
	payments := make([]PaymentResponse, len(invoice.Payments))
	for i := range invoice.Payments {
		payments[i] = ToPaymentResponse(&invoice.Payments[i])
	}

	return InvoiceResponse{
		ID:              invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		OrderID:         invoice.OrderID,
		OrderNumber:     invoice.OrderNumber,
		RetailerID:      invoice.RetailerID,
		RetailerName:    invoice.RetailerName,
		RetailerAddress: invoice.RetailerAddress,
		RetailerPhone:   invoice.RetailerPhone,
		RetailerGSTIN:   invoice.RetailerGSTIN,
		TotalAmount:     invoice.TotalAmount,
		TaxableValue:    invoice.TaxableValue,
		GSTTotal:        invoice.GSTTotal,
		CGST:            invoice.CGST,
		SGST:            invoice.SGST,
		PaidAmount:      invoice.PaidAmount,
		BalanceAmount:   invoice.BalanceAmount,
		PaymentStatus:   string(invoice.PaymentStatus),
		InvoiceDate:     invoice.InvoiceDate,
		Payments:        payments,
		CreatedAt:       invoice.CreatedAt,
		UpdatedAt:       invoice.UpdatedAt,
		Version:         invoice.Version,
	}
}

// ToInvoiceListItemResponses converts a slice of invoices to list item DTOs
func ToInvoiceListItemResponses(invoices []billing.Invoice) []InvoiceListItemResponse {
	responses := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		responses[i] = InvoiceListItemResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			OrderNumber:   inv.OrderNumber,
			RetailerName:  inv.RetailerName,
			TotalAmount:   inv.TotalAmount,
			PaidAmount:    inv.PaidAmount,
			BalanceAmount: inv.BalanceAmount,
			PaymentStatus: string(inv.PaymentStatus),
			InvoiceDate:   inv.InvoiceDate,
		}
	}
	return responses
}

// ToPaymentResponses converts a slice of payments to response DTOs
func ToPaymentResponses(payments []billing.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}
