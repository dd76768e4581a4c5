package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorWrapsKind(t *testing.T) {
	errRoomGone := New(ErrNotFound, "ROOM_NOT_FOUND", "room not found")

	assert.True(t, errors.Is(errRoomGone, ErrNotFound))
	assert.False(t, errors.Is(errRoomGone, ErrInvalidState))

	wrapped := fmt.Errorf("load room: %w", errRoomGone)
	e, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "ROOM_NOT_FOUND", e.Code)
}

func TestWithKeepsSentinel(t *testing.T) {
	errBadAmount := New(ErrInvalidInput, "INVALID_AMOUNT", "invalid amount")
	err := errBadAmount.With("amount %d exceeds balance", 500)

	assert.True(t, errors.Is(err, errBadAmount))
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "amount 500 exceeds balance", Message(err))

	e, ok := As(err)
	assert.True(t, ok)
	assert.Equal(t, "INVALID_AMOUNT", e.Code)
}

func TestMessageFallsBackToErrorText(t *testing.T) {
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "room not found", Message(New(ErrNotFound, "X", "room not found")))
}
