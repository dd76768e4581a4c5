package auth

import "resortdesk/internal/pkg/apperr"

var (
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrAccountDisabled    = apperr.New(apperr.ErrForbidden, "ACCOUNT_DISABLED", "account is disabled")
	ErrUserNotFound       = apperr.New(apperr.ErrNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailAlreadyExists = apperr.New(apperr.ErrInvalidState, "EMAIL_EXISTS", "email already exists")
	ErrInvalidRole        = apperr.New(apperr.ErrInvalidInput, "INVALID_ROLE", "role must be admin or staff")
)
