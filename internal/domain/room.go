package domain

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
	RoomSuite  RoomType = "suite"
	RoomDeluxe RoomType = "deluxe"
)

func ParseRoomType(s string) (RoomType, error) {
	switch rt := RoomType(s); rt {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
		return rt, nil
	}
	return "", fmt.Errorf("unknown room type %q", s)
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "available"
	RoomOccupied    RoomStatus = "occupied"
	RoomMaintenance RoomStatus = "maintenance"
	RoomReserved    RoomStatus = "reserved"
	RoomCleaning    RoomStatus = "cleaning"
)

func ParseRoomStatus(s string) (RoomStatus, error) {
	switch st := RoomStatus(s); st {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomReserved, RoomCleaning:
		return st, nil
	}
	return "", fmt.Errorf("unknown room status %q", s)
}

// IsManual reports statuses that only staff set.
func (s RoomStatus) IsManual() bool {
	return s == RoomMaintenance || s == RoomCleaning
}

type Room struct {
	ID           int64                       `json:"id" gorm:"primaryKey"`
	RoomNumber   string                      `json:"roomNumber" gorm:"column:room_number;size:32;not null;uniqueIndex"`
	Type         RoomType                    `json:"type" gorm:"size:16;not null"`
	Status       RoomStatus                  `json:"status" gorm:"size:16;not null;default:available;index"`
	Price        float64                     `json:"price" gorm:"not null"`
	MonthlyPrice *float64                    `json:"monthlyPrice,omitempty"`
	Floor        int                         `json:"floor"`
	Capacity     int                         `json:"capacity"`
	Description  string                      `json:"description,omitempty" gorm:"type:text"`
	Amenities    datatypes.JSONSlice[string] `json:"amenities"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// RoomStatusChange describes one status transition made by reconciliation
// or by an administrative override.
type RoomStatusChange struct {
	RoomID     int64      `json:"roomId"`
	RoomNumber string     `json:"roomNumber"`
	From       RoomStatus `json:"from"`
	To         RoomStatus `json:"to"`
	Reason     string     `json:"reason"`
	BookingID  *int64     `json:"bookingId,omitempty"`
	Source     string     `json:"source"`
	At         time.Time  `json:"at"`
}

const (
	StatusSourceReconcile = "reconcile"
	StatusSourceOverride  = "override"
	StatusSourceBooking   = "booking"
)

// RoomStatusLog is the persisted form of RoomStatusChange.
type RoomStatusLog struct {
	ID         int64      `json:"id" gorm:"primaryKey"`
	RoomID     int64      `json:"roomId" gorm:"not null;index"`
	RoomNumber string     `json:"roomNumber" gorm:"size:32"`
	From       RoomStatus `json:"from" gorm:"column:from_status;size:16"`
	To         RoomStatus `json:"to" gorm:"column:to_status;size:16"`
	Reason     string     `json:"reason" gorm:"type:text"`
	BookingID  *int64     `json:"bookingId,omitempty"`
	Source     string     `json:"source" gorm:"size:16"`
	CreatedAt  time.Time  `json:"createdAt" gorm:"index"`
}

func NewRoomStatusLog(c RoomStatusChange) RoomStatusLog {
	return RoomStatusLog{
		RoomID:     c.RoomID,
		RoomNumber: c.RoomNumber,
		From:       c.From,
		To:         c.To,
		Reason:     c.Reason,
		BookingID:  c.BookingID,
		Source:     c.Source,
		CreatedAt:  c.At,
	}
}
