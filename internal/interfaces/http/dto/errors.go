package dto

import "net/http"

// Domain error codes surfaced over HTTP. The application layer returns
// shared.DomainError values carrying these codes; the handler layer maps
// them to status codes here and nowhere else.
const (
	CodeNotFound            = "NOT_FOUND"
	CodeProductNotFound     = "PRODUCT_NOT_FOUND"
	CodeInvoiceNotFound     = "INVOICE_NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeForbidden           = "FORBIDDEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeValidation          = "VALIDATION"
	CodeInvalidStatus       = "INVALID_STATUS"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodePaymentRequired     = "PAYMENT_REQUIRED"
	CodeOverpaymentRejected = "OVERPAYMENT_REJECTED"
	CodeRetailerInactive    = "RETAILER_INACTIVE"
	CodeProductInactive     = "PRODUCT_INACTIVE"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeOptimisticLock      = "OPTIMISTIC_LOCK_FAILED"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInternal            = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes.
// Business-rule rejections are 422; state machine violations and
// concurrent-update losses are 409.
var errorCodeHTTPStatus = map[string]int{
	CodeNotFound:        http.StatusNotFound,
	CodeProductNotFound: http.StatusNotFound,
	CodeInvoiceNotFound: http.StatusNotFound,

	CodeAlreadyExists: http.StatusConflict,

	CodeUnauthorized: http.StatusUnauthorized,
	CodeForbidden:    http.StatusForbidden,

	CodeValidation:    http.StatusBadRequest,
	CodeInvalidStatus: http.StatusBadRequest,
	CodeBadRequest:    http.StatusBadRequest,

	CodeInvalidTransition:   http.StatusConflict,
	CodeConcurrencyConflict: http.StatusConflict,
	CodeOptimisticLock:      http.StatusConflict,

	CodeInsufficientStock:   http.StatusUnprocessableEntity,
	CodePaymentRequired:     http.StatusUnprocessableEntity,
	CodeOverpaymentRejected: http.StatusUnprocessableEntity,
	CodeRetailerInactive:    http.StatusUnprocessableEntity,
	CodeProductInactive:     http.StatusUnprocessableEntity,

	CodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Validation
// codes follow the INVALID_* convention; anything unknown is a 500 so
// unexpected failures never masquerade as client errors.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if len(code) > 8 && code[:8] == "INVALID_" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
