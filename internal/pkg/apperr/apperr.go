// Package apperr holds the error kinds shared by every module. Module errors
// wrap one of the kinds so handlers can map them to HTTP statuses without
// knowing module internals.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not_found")
	ErrInvalidState = errors.New("invalid_state")
	ErrInvalidInput = errors.New("invalid_input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Error is a module error with a stable machine code.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func New(kind error, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// With returns a copy carrying a more specific message, keeping kind and code,
// so errors.Is against the original sentinel still holds.
func (e *Error) With(format string, args ...any) error {
	return &detailed{base: e, msg: fmt.Sprintf(format, args...)}
}

type detailed struct {
	base *Error
	msg  string
}

func (d *detailed) Error() string { return d.msg }

func (d *detailed) Unwrap() error { return d.base }

// As extracts the *Error from err, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Message returns the user-facing message of err: the detailed message when
// one was attached with With, the base message otherwise.
func Message(err error) string {
	var d *detailed
	if errors.As(err, &d) {
		return d.msg
	}
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

// Invalid builds an ad-hoc InvalidInput error.
func Invalid(format string, args ...any) error {
	return New(ErrInvalidInput, "VALIDATION_ERROR", fmt.Sprintf(format, args...))
}
