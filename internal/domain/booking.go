package domain

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type BookingType string

const (
	BookingIndividual BookingType = "individual"
	BookingCompany    BookingType = "company"
)

type RentalType string

const (
	RentalHourly  RentalType = "hourly"
	RentalDaily   RentalType = "daily"
	RentalMonthly RentalType = "monthly"
)

func ParseRentalType(s string) (RentalType, error) {
	switch rt := RentalType(s); rt {
	case RentalHourly, RentalDaily, RentalMonthly:
		return rt, nil
	}
	return "", fmt.Errorf("unsupported rental type %q", s)
}

type BookingStatus string

const (
	// BookingPending is a legacy status only reachable through the
	// administrative override.
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked-in"
	BookingCheckedOut BookingStatus = "checked-out"
	BookingCancelled  BookingStatus = "cancelled"
)

func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown booking status %q", s)
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

type CheckoutMode string

const (
	CheckoutRealtime      CheckoutMode = "realtime"
	CheckoutPreCalculated CheckoutMode = "precalculated"
	CheckoutCustom        CheckoutMode = "custom"
)

type NotificationStatus string

const (
	NotificationNotSubmitted NotificationStatus = "not_submitted"
	NotificationSubmitted    NotificationStatus = "submitted"
	NotificationFailed       NotificationStatus = "failed"
)

func ParseNotificationStatus(s string) (NotificationStatus, error) {
	switch st := NotificationStatus(s); st {
	case NotificationNotSubmitted, NotificationSubmitted, NotificationFailed:
		return st, nil
	}
	return "", fmt.Errorf("unknown notification status %q", s)
}

type Guest struct {
	Name        string `json:"name"`
	IDNumber    string `json:"idNumber,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Nationality string `json:"nationality,omitempty"`
}

// ServiceLine is a catalog service consumed during a stay.
type ServiceLine struct {
	ServiceID int64     `json:"serviceId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Amount    float64   `json:"amount"`
	AddedAt   time.Time `json:"addedAt"`
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Booking struct {
	ID         int64  `json:"id" gorm:"primaryKey"`
	RoomID     int64  `json:"roomId" gorm:"not null;index"`
	Room       *Room  `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	CustomerID *int64 `json:"customerId,omitempty" gorm:"index"`

	BookingType BookingType `json:"bookingType" gorm:"size:16;not null"`
	RentalType  RentalType  `json:"rentalType" gorm:"size:16;not null"`

	RepresentativeName     string `json:"representativeName"`
	RepresentativePhone    string `json:"representativePhone" gorm:"size:32"`
	RepresentativeIDNumber string `json:"representativeIdNumber,omitempty" gorm:"size:64"`
	RepresentativeEmail    string `json:"representativeEmail,omitempty"`
	CompanyName            string `json:"companyName,omitempty"`
	CompanyTaxCode         string `json:"companyTaxCode,omitempty" gorm:"size:64"`
	CompanyAddress         string `json:"companyAddress,omitempty"`

	Guests datatypes.JSONSlice[Guest] `json:"guests"`

	// Dates are stored as YYYY-MM-DD and times as HH:MM in the hotel's timezone.
	CheckInDate    string     `json:"checkInDate" gorm:"size:10;not null;index"`
	CheckOutDate   string     `json:"checkOutDate,omitempty" gorm:"size:10;index"`
	CheckInTime    string     `json:"checkInTime" gorm:"size:5"`
	CheckOutTime   string     `json:"checkOutTime" gorm:"size:5"`
	ActualCheckIn  *time.Time `json:"actualCheckIn,omitempty"`
	ActualCheckOut *time.Time `json:"actualCheckOut,omitempty" gorm:"index"`

	TotalAmount    float64      `json:"totalAmount"`
	BaseAmount     float64      `json:"baseAmount"`
	ServiceCharges float64      `json:"serviceCharges"`
	ExtraCharges   float64      `json:"extraCharges"`
	CustomAmount   *float64     `json:"customAmount,omitempty"`
	FinalAmount    float64      `json:"finalAmount"`
	CustomPricing  bool         `json:"customPricing"`
	CheckoutMode   CheckoutMode `json:"checkoutMode,omitempty" gorm:"size:16"`

	ServiceLines datatypes.JSONSlice[ServiceLine] `json:"serviceLines"`

	Status             BookingStatus `json:"status" gorm:"size:16;not null;index"`
	CancelledAt        *time.Time    `json:"cancelledAt,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty" gorm:"type:text"`
	Notes              string        `json:"notes,omitempty" gorm:"type:text"`

	NotificationStatus      NotificationStatus `json:"notificationStatus" gorm:"size:16;default:not_submitted"`
	NotificationSubmittedAt *time.Time         `json:"notificationSubmittedAt,omitempty"`
	NotificationReference   string             `json:"notificationReference,omitempty"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlannedCheckIn combines the check-in date and time in loc.
func (b *Booking) PlannedCheckIn(loc *time.Location) (time.Time, error) {
	return CombineDateTime(b.CheckInDate, b.CheckInTime, loc)
}

// PlannedCheckOut returns nil when the booking has no check-out date.
func (b *Booking) PlannedCheckOut(loc *time.Location) (*time.Time, error) {
	if b.CheckOutDate == "" {
		return nil, nil
	}
	t, err := CombineDateTime(b.CheckOutDate, b.CheckOutTime, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CombineDateTime parses a YYYY-MM-DD date and an optional HH:MM time.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if clock == "" {
		clock = "00:00"
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
}
