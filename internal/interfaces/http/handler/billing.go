package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/distribops/backend/internal/application/billing"
)

// BillingHandler exposes invoice reads and payment recording
type BillingHandler struct {
	BaseHandler
	paymentService *billingapp.PaymentService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(paymentService *billingapp.PaymentService) *BillingHandler {
	return &BillingHandler{paymentService: paymentService}
}

// RegisterRoutes registers invoice and payment routes
func (h *BillingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	{
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
		invoices.GET("/:id/payments", h.ListInvoicePayments)
	}

	payments := rg.Group("/payments")
	{
		payments.POST("", h.RecordPayment)
		payments.GET("", h.ListPayments)
	}

	rg.GET("/orders/:id/invoice", h.GetInvoiceByOrder)
}

// RecordPayment appends a payment to an invoice's ledger
func (h *BillingHandler) RecordPayment(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// GetInvoice returns an invoice with its payment ledger
func (h *BillingHandler) GetInvoice(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice id")
		return
	}

	invoice, err := h.paymentService.GetInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetInvoiceByOrder returns the invoice generated for an order
func (h *BillingHandler) GetInvoiceByOrder(c *gin.Context) {
	orderID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order id")
		return
	}

	invoice, err := h.paymentService.GetInvoiceByOrder(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// ListInvoices returns invoices, filterable by payment status or retailer
func (h *BillingHandler) ListInvoices(c *gin.Context) {
	var filter billingapp.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	invoices, total, err := h.paymentService.ListInvoices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// ListPayments returns ledger entries, optionally scoped to one collector
func (h *BillingHandler) ListPayments(c *gin.Context) {
	var filter billingapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	payments, total, err := h.paymentService.ListPayments(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// ListInvoicePayments returns one invoice's full ledger
func (h *BillingHandler) ListInvoicePayments(c *gin.Context) {
	invoiceID, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid invoice id")
		return
	}

	payments, err := h.paymentService.ListPaymentsForInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
