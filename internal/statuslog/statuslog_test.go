package statuslog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain"
	"resortdesk/internal/testutil"
)

func TestGormStore_RecordAndList(t *testing.T) {
	store := NewGormStore(testutil.NewDB(t))
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	bookingID := int64(5)
	require.NoError(t, store.Record(ctx, domain.RoomStatusChange{
		RoomID: 1, RoomNumber: "101", From: domain.RoomAvailable, To: domain.RoomReserved,
		Source: domain.StatusSourceBooking, BookingID: &bookingID, At: base,
	}))
	require.NoError(t, store.Record(ctx, domain.RoomStatusChange{
		RoomID: 1, RoomNumber: "101", From: domain.RoomReserved, To: domain.RoomOccupied,
		Source: domain.StatusSourceBooking, At: base.Add(time.Hour),
	}))
	require.NoError(t, store.Record(ctx, domain.RoomStatusChange{
		RoomID: 2, RoomNumber: "102", From: domain.RoomAvailable, To: domain.RoomMaintenance,
		Source: domain.StatusSourceOverride, At: base,
	}))

	logs, err := store.ListByRoom(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, domain.RoomOccupied, logs[0].To)
	assert.Equal(t, domain.RoomReserved, logs[1].To)
	require.NotNil(t, logs[1].BookingID)
	assert.Equal(t, bookingID, *logs[1].BookingID)

	logs, err = store.ListByRoom(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestStatusDocumentRoundTrip(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	doc := newStatusDocument(domain.RoomStatusChange{
		RoomID: 3, RoomNumber: "301", From: domain.RoomCleaning, To: domain.RoomAvailable,
		Reason: "no active booking", Source: domain.StatusSourceReconcile, At: at,
	})

	got := doc.toDomain()
	assert.Equal(t, int64(3), got.RoomID)
	assert.Equal(t, domain.RoomCleaning, got.From)
	assert.Equal(t, domain.RoomAvailable, got.To)
	assert.True(t, at.Equal(got.CreatedAt))
}
