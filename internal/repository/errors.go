package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is gorm's record-not-found so errors.Is works on both.
	ErrNotFound = gorm.ErrRecordNotFound
	// ErrStale means a conditional update matched no row: the record
	// changed state between read and write.
	ErrStale = errors.New("record changed concurrently")
	// ErrRoomNotAvailable is returned when reserving a room that is not available.
	ErrRoomNotAvailable = errors.New("room is not available")
)

// IsUniqueViolation recognises unique-constraint failures from PostgreSQL
// (SQLSTATE 23505), gorm's translated error and SQLite messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func paginate(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}
