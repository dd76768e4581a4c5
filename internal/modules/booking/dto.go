package booking

import (
	"time"

	"resortdesk/internal/domain"
	"resortdesk/internal/modules/billing"
	"resortdesk/internal/repository"
)

type GuestInput struct {
	Name        string `json:"name" binding:"required"`
	IDNumber    string `json:"idNumber"`
	Phone       string `json:"phone"`
	Nationality string `json:"nationality"`
}

type CreateBookingRequest struct {
	RoomID      int64  `json:"roomId" binding:"required,gt=0"`
	CustomerID  *int64 `json:"customerId"`
	BookingType string `json:"bookingType"`
	RentalType  string `json:"rentalType" binding:"required"`

	RepresentativeName     string `json:"representativeName"`
	RepresentativePhone    string `json:"representativePhone"`
	RepresentativeIDNumber string `json:"representativeIdNumber"`
	RepresentativeEmail    string `json:"representativeEmail" binding:"omitempty,email"`
	CompanyName            string `json:"companyName"`
	CompanyTaxCode         string `json:"companyTaxCode"`
	CompanyAddress         string `json:"companyAddress"`

	Guests []GuestInput `json:"guests" binding:"omitempty,dive"`

	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate"`
	CheckInTime  string `json:"checkInTime"`
	CheckOutTime string `json:"checkOutTime"`

	CustomPricing     bool     `json:"customPricing"`
	CustomTotalAmount *float64 `json:"customTotalAmount"`
	Notes             string   `json:"notes"`
}

// UpdateBookingRequest edits contact data and the planned stay. Nil fields
// are left unchanged.
type UpdateBookingRequest struct {
	RepresentativeName     *string       `json:"representativeName"`
	RepresentativePhone    *string       `json:"representativePhone"`
	RepresentativeIDNumber *string       `json:"representativeIdNumber"`
	RepresentativeEmail    *string       `json:"representativeEmail" binding:"omitempty,email"`
	CompanyName            *string       `json:"companyName"`
	CompanyTaxCode         *string       `json:"companyTaxCode"`
	CompanyAddress         *string       `json:"companyAddress"`
	Guests                 *[]GuestInput `json:"guests" binding:"omitempty,dive"`
	CheckInDate            *string       `json:"checkInDate"`
	CheckOutDate           *string       `json:"checkOutDate"`
	CheckInTime            *string       `json:"checkInTime"`
	CheckOutTime           *string       `json:"checkOutTime"`
	Notes                  *string       `json:"notes"`
}

// CheckoutRequest picks the base amount: custom, then pre-calculated, then
// a real-time recalculation.
type CheckoutRequest struct {
	UseCustomAmount  bool     `json:"useCustomAmount"`
	CustomAmount     *float64 `json:"customAmount"`
	UsePreCalculated bool     `json:"usePreCalculated"`
	ExtraCharges     float64  `json:"extraCharges" binding:"gte=0"`
	Notes            string   `json:"notes"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdateAmountRequest struct {
	TotalAmount float64 `json:"totalAmount"`
}

type CalculateRequest struct {
	CheckOutAt *time.Time `json:"checkOutAt"`
}

type AddServiceRequest struct {
	ServiceID int64 `json:"serviceId" binding:"required,gt=0"`
	Quantity  int   `json:"quantity" binding:"omitempty,min=1"`
}

type NotificationRequest struct {
	Status    string `json:"status" binding:"required"`
	Reference string `json:"reference"`
}

type ListParams struct {
	Filters repository.BookingFilters
	Page    int
}

type ListResult struct {
	Bookings []domain.Booking `json:"bookings"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type CheckoutResult struct {
	Booking    *domain.Booking          `json:"booking"`
	Quote      *billing.Quote           `json:"quote,omitempty"`
	RoomChange *domain.RoomStatusChange `json:"roomChange,omitempty"`
}

type RealAmount struct {
	BookingID       int64         `json:"bookingId"`
	Quote           billing.Quote `json:"quote"`
	RealAmount      float64       `json:"realAmount"`
	PreCalculated   float64       `json:"preCalculatedAmount"`
	ServiceCharges  float64       `json:"serviceCharges"`
	EstimatedFinal  float64       `json:"estimatedFinalAmount"`
	Difference      float64       `json:"difference"`
	ElapsedMinutes  int64         `json:"elapsedMinutes"`
	CalculatedUntil time.Time     `json:"calculatedUntil"`
}
