package domain

import (
	"time"

	"gorm.io/datatypes"
)

type InvoicePaymentStatus string

const (
	PaymentPending  InvoicePaymentStatus = "pending"
	PaymentPartial  InvoicePaymentStatus = "partial"
	PaymentPaid     InvoicePaymentStatus = "paid"
	PaymentRefunded InvoicePaymentStatus = "refunded"
)

type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "draft"
	InvoiceSent      InvoiceStatus = "sent"
	InvoicePaid      InvoiceStatus = "paid"
	InvoiceCancelled InvoiceStatus = "cancelled"
)

type InvoiceItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice carries a snapshot of the booking's customer and room taken at
// creation time; later booking edits are not propagated.
type Invoice struct {
	ID            int64  `json:"id" gorm:"primaryKey"`
	InvoiceNumber string `json:"invoiceNumber" gorm:"size:16;not null;uniqueIndex"`
	BookingID     int64  `json:"bookingId" gorm:"not null;index"`

	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone,omitempty"`
	CustomerEmail   string `json:"customerEmail,omitempty"`
	CompanyName     string `json:"companyName,omitempty"`
	CompanyTaxCode  string `json:"companyTaxCode,omitempty"`
	CompanyAddress  string `json:"companyAddress,omitempty"`
	RoomNumber      string `json:"roomNumber"`
	RoomType        string `json:"roomType"`
	RentalType      string `json:"rentalType"`
	StayCheckInDate string `json:"stayCheckInDate"`
	StayCheckOutAt  string `json:"stayCheckOutDate,omitempty"`

	Items       datatypes.JSONSlice[InvoiceItem] `json:"items"`
	Subtotal    float64                          `json:"subtotal"`
	Discount    float64                          `json:"discount"`
	TaxAmount   float64                          `json:"taxAmount"`
	TotalAmount float64                          `json:"totalAmount"`
	PaidAmount  float64                          `json:"paidAmount"`

	PaymentStatus InvoicePaymentStatus `json:"paymentStatus" gorm:"size:16;not null;index"`
	Status        InvoiceStatus        `json:"status" gorm:"size:16;not null;index"`
	PaymentMethod string               `json:"paymentMethod,omitempty" gorm:"size:32"`
	PaymentDate   *time.Time           `json:"paymentDate,omitempty" gorm:"index"`
	PaymentNotes  string               `json:"paymentNotes,omitempty" gorm:"type:text"`
	RefundedAt    *time.Time           `json:"refundedAt,omitempty"`

	DueDate   string    `json:"dueDate,omitempty" gorm:"size:10"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Invoice) Balance() float64 {
	return i.TotalAmount - i.PaidAmount
}
