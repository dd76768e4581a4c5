package customer

import "resortdesk/internal/pkg/apperr"

var (
	ErrCustomerNotFound    = apperr.New(apperr.ErrNotFound, "CUSTOMER_NOT_FOUND", "customer not found")
	ErrPhoneTaken          = apperr.New(apperr.ErrInvalidState, "PHONE_TAKEN", "a customer with this phone already exists")
	ErrCustomerHasBookings = apperr.New(apperr.ErrInvalidState, "CUSTOMER_HAS_BOOKINGS", "customer has bookings and cannot be deleted")
	ErrMissingFields       = apperr.New(apperr.ErrInvalidInput, "CUSTOMER_FIELDS_REQUIRED", "full name and phone are required")
)
