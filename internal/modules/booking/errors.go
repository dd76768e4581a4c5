package booking

import "resortdesk/internal/pkg/apperr"

var (
	ErrBookingNotFound  = apperr.New(apperr.ErrNotFound, "BOOKING_NOT_FOUND", "booking not found")
	ErrRoomNotFound     = apperr.New(apperr.ErrNotFound, "ROOM_NOT_FOUND", "room not found")
	ErrCustomerNotFound = apperr.New(apperr.ErrNotFound, "CUSTOMER_NOT_FOUND", "customer not found")
	ErrServiceNotFound  = apperr.New(apperr.ErrNotFound, "SERVICE_NOT_FOUND", "service not found")

	ErrRoomNotAvailable  = apperr.New(apperr.ErrInvalidState, "ROOM_NOT_AVAILABLE", "room is not available")
	ErrInvalidTransition = apperr.New(apperr.ErrInvalidState, "INVALID_STATUS_TRANSITION", "booking status does not allow this action")
	ErrBookingChanged    = apperr.New(apperr.ErrInvalidState, "BOOKING_CHANGED", "booking was modified concurrently, reload and retry")
	ErrBookingClosed     = apperr.New(apperr.ErrInvalidState, "BOOKING_CLOSED", "checked-out or cancelled bookings cannot be edited")
	ErrBookingCheckedIn  = apperr.New(apperr.ErrInvalidState, "BOOKING_CHECKED_IN", "a checked-in booking cannot be deleted")
	ErrServiceInactive   = apperr.New(apperr.ErrInvalidState, "SERVICE_INACTIVE", "service is not active")

	ErrInvalidStatus             = apperr.New(apperr.ErrInvalidInput, "INVALID_BOOKING_STATUS", "unknown booking status")
	ErrInvalidBookingType        = apperr.New(apperr.ErrInvalidInput, "INVALID_BOOKING_TYPE", "booking type must be individual or company")
	ErrMissingRepresentative     = apperr.New(apperr.ErrInvalidInput, "REPRESENTATIVE_REQUIRED", "representative name and phone are required")
	ErrMissingCompanyName        = apperr.New(apperr.ErrInvalidInput, "COMPANY_NAME_REQUIRED", "company name is required for company bookings")
	ErrInvalidAmount             = apperr.New(apperr.ErrInvalidInput, "INVALID_AMOUNT", "amount must be positive")
	ErrInvalidDate               = apperr.New(apperr.ErrInvalidInput, "INVALID_DATE", "invalid date or time")
	ErrInvalidNotificationStatus = apperr.New(apperr.ErrInvalidInput, "INVALID_NOTIFICATION_STATUS", "notification status must be not_submitted, submitted or failed")
)
