package invoice

import "resortdesk/internal/pkg/apperr"

var (
	ErrInvoiceNotFound = apperr.New(apperr.ErrNotFound, "INVOICE_NOT_FOUND", "invoice not found")
	ErrBookingNotFound = apperr.New(apperr.ErrNotFound, "BOOKING_NOT_FOUND", "booking not found")

	ErrInvoicePaid      = apperr.New(apperr.ErrInvalidState, "INVOICE_PAID", "paid invoices cannot be modified")
	ErrInvoiceCancelled = apperr.New(apperr.ErrInvalidState, "INVOICE_CANCELLED", "invoice is cancelled")
	ErrInvoiceRefunded  = apperr.New(apperr.ErrInvalidState, "INVOICE_REFUNDED", "invoice was refunded")
	ErrNothingToRefund  = apperr.New(apperr.ErrInvalidState, "NOTHING_TO_REFUND", "invoice has no payments to refund")
	ErrNumbersExhausted = apperr.New(apperr.ErrInvalidState, "INVOICE_NUMBERS_EXHAUSTED", "all 9999 invoice numbers for this month are used")

	ErrInvalidAmount        = apperr.New(apperr.ErrInvalidInput, "INVALID_AMOUNT", "invoice total must be positive")
	ErrInvalidPayment       = apperr.New(apperr.ErrInvalidInput, "INVALID_PAYMENT_AMOUNT", "payment must be positive and not exceed the balance")
	ErrTotalBelowPaid       = apperr.New(apperr.ErrInvalidInput, "TOTAL_BELOW_PAID", "total amount cannot be less than the paid amount")
	ErrInvalidStatus        = apperr.New(apperr.ErrInvalidInput, "INVALID_INVOICE_STATUS", "status must be draft, sent or cancelled")
	ErrInvalidPaymentStatus = apperr.New(apperr.ErrInvalidInput, "INVALID_PAYMENT_STATUS", "payment status must be pending, partial, paid or refunded")
	ErrInvalidDate          = apperr.New(apperr.ErrInvalidInput, "INVALID_DATE", "invalid date")
)
