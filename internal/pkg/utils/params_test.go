package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/pkg/apperr"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("booking id", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-3"} {
		_, err := ParseID("booking id", raw)
		assert.True(t, errors.Is(err, apperr.ErrInvalidInput), raw)
	}

	id, err = OptionalID("roomId", "")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestPage(t *testing.T) {
	page, limit, offset, err := Page("", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, limit)
	assert.Equal(t, 0, offset)

	_, limit, offset, err = Page("3", "500")
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, limit)
	assert.Equal(t, 200, offset)

	_, _, _, err = Page("0", "")
	assert.Error(t, err)
	_, _, _, err = Page("1", "x")
	assert.Error(t, err)
}

func TestParseDateAndClock(t *testing.T) {
	d, err := ParseDate("from", "2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", d)

	_, err = ParseDate("from", "01/03/2026")
	assert.Error(t, err)

	_, err = ParseClock("checkInTime", "14:00")
	assert.NoError(t, err)
	_, err = ParseClock("checkInTime", "2pm")
	assert.Error(t, err)

	v, err := OptionalInt("floor", "")
	require.NoError(t, err)
	assert.Nil(t, v)
	_, err = OptionalInt("floor", "two")
	assert.Error(t, err)

	b, err := OptionalBool("active", "true")
	require.NoError(t, err)
	assert.True(t, *b)
}
