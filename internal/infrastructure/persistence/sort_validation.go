package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":                true,
	"created_at":        true,
	"updated_at":        true,
	"name":              true,
	"unit_price":        true,
	"gst_percentage":    true,
	"bottles_per_crate": true,
	"active":            true,
}

// RetailerSortFields contains allowed sort fields for retailers
var RetailerSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"active":     true,
}

// StockItemSortFields contains allowed sort fields for stock items
var StockItemSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"updated_at":       true,
	"product_id":       true,
	"quantity_on_hand": true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"retailer_id":   true,
	"retailer_name": true,
	"sales_rep_id":  true,
	"driver_id":     true,
	"status":        true,
	"payment_mode":  true,
	"total_amount":  true,
	"approved_at":   true,
	"dispatched_at": true,
	"delivered_at":  true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"order_id":       true,
	"order_number":   true,
	"retailer_id":    true,
	"retailer_name":  true,
	"total_amount":   true,
	"paid_amount":    true,
	"balance_amount": true,
	"payment_status": true,
	"invoice_date":   true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"invoice_id":      true,
	"amount":          true,
	"mode":            true,
	"collected_by_id": true,
}

// DeliverySortFields contains allowed sort fields for deliveries
var DeliverySortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_id":      true,
	"invoice_id":    true,
	"driver_id":     true,
	"status":        true,
	"delivery_time": true,
}
