package invoice

import (
	"time"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

type ItemInput struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice   float64 `json:"unitPrice" binding:"gte=0"`
}

// CreateInvoiceRequest: when Items is empty the items are derived from the
// booking's charges. TotalAmount, when positive, overrides the computed total.
type CreateInvoiceRequest struct {
	BookingID   int64       `json:"bookingId" binding:"required,gt=0"`
	Items       []ItemInput `json:"items" binding:"omitempty,dive"`
	Discount    float64     `json:"discount" binding:"gte=0"`
	TaxAmount   float64     `json:"taxAmount" binding:"gte=0"`
	TotalAmount *float64    `json:"totalAmount"`
	Status      string      `json:"status"`
	DueDate     string      `json:"dueDate"`
	Notes       string      `json:"notes"`
}

type UpdateInvoiceRequest struct {
	Items       *[]ItemInput `json:"items" binding:"omitempty,dive"`
	Discount    *float64     `json:"discount" binding:"omitempty,gte=0"`
	TaxAmount   *float64     `json:"taxAmount" binding:"omitempty,gte=0"`
	TotalAmount *float64     `json:"totalAmount"`
	Status      *string      `json:"status"`
	DueDate     *string      `json:"dueDate"`
	Notes       *string      `json:"notes"`
}

type PaymentRequest struct {
	Amount      float64    `json:"amount"`
	Method      string     `json:"paymentMethod"`
	PaymentDate *time.Time `json:"paymentDate"`
	Notes       string     `json:"notes"`
}

type RefundRequest struct {
	Notes string `json:"notes"`
}

type ListParams struct {
	Filters repository.InvoiceFilters
	Page    int
}

type ListResult struct {
	Invoices []domain.Invoice `json:"invoices"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}
