package room

import "resortdesk/internal/pkg/apperr"

var (
	ErrRoomNotFound          = apperr.New(apperr.ErrNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrRoomNumberTaken       = apperr.New(apperr.ErrInvalidInput, "ROOM_NUMBER_TAKEN", "room number already exists")
	ErrInvalidRoomType       = apperr.New(apperr.ErrInvalidInput, "INVALID_ROOM_TYPE", "room type must be single, double, suite or deluxe")
	ErrInvalidRoomStatus     = apperr.New(apperr.ErrInvalidInput, "INVALID_ROOM_STATUS", "unknown room status")
	ErrInvalidPrice          = apperr.New(apperr.ErrInvalidInput, "INVALID_PRICE", "price must be positive")
	ErrRoomHasActiveBookings = apperr.New(apperr.ErrInvalidState, "ROOM_HAS_ACTIVE_BOOKINGS", "room has confirmed or checked-in bookings")
	ErrRoomHasHistory        = apperr.New(apperr.ErrInvalidState, "ROOM_HAS_BOOKING_HISTORY", "room is referenced by past bookings; set it to maintenance instead")
	ErrRoomOccupied          = apperr.New(apperr.ErrInvalidState, "ROOM_OCCUPIED", "room has a checked-in booking; only occupied is allowed")
)
