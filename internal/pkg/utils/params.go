package utils

import (
	"strconv"
	"strings"
	"time"

	"resortdesk/internal/pkg/apperr"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParseID parses a positive int64 path or query parameter.
func ParseID(name, raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.ErrInvalidInput, "INVALID_ID", "invalid "+name)
	}
	return id, nil
}

// OptionalID parses raw when it is non-empty and returns 0 otherwise.
func OptionalID(name, raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return ParseID(name, raw)
}

// OptionalInt returns nil for an empty value.
func OptionalInt(name, raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperr.Invalid("invalid %s: %q", name, raw)
	}
	return &v, nil
}

// OptionalBool returns nil for an empty value.
func OptionalBool(name, raw string) (*bool, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperr.Invalid("invalid %s: %q", name, raw)
	}
	return &v, nil
}

// Page converts page/limit query values into limit and offset.
func Page(pageRaw, limitRaw string) (page, limit, offset int, err error) {
	page, limit = 1, DefaultPageSize

	if pageRaw != "" {
		page, err = strconv.Atoi(pageRaw)
		if err != nil || page < 1 {
			return 0, 0, 0, apperr.Invalid("invalid page: %q", pageRaw)
		}
	}
	if limitRaw != "" {
		limit, err = strconv.Atoi(limitRaw)
		if err != nil || limit < 1 {
			return 0, 0, 0, apperr.Invalid("invalid limit: %q", limitRaw)
		}
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit, nil
}

// ParseDate validates a YYYY-MM-DD value; empty is allowed.
func ParseDate(name, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", apperr.Invalid("invalid %s: expected YYYY-MM-DD", name)
	}
	return raw, nil
}

// ParseClock validates an HH:MM value; empty is allowed.
func ParseClock(name, raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if _, err := time.Parse("15:04", raw); err != nil {
		return "", apperr.Invalid("invalid %s: expected HH:MM", name)
	}
	return raw, nil
}
