package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resortdesk/internal/domain"
	"resortdesk/internal/testutil"
)

func seedRoom(t *testing.T, db *gorm.DB, number string, status domain.RoomStatus) *domain.Room {
	t.Helper()
	room := &domain.Room{RoomNumber: number, Type: domain.RoomDouble, Status: status, Price: 100000}
	require.NoError(t, NewRoomRepository(db).Create(context.Background(), room))
	return room
}

func newBooking(roomID int64) *domain.Booking {
	return &domain.Booking{
		RoomID:              roomID,
		BookingType:         domain.BookingIndividual,
		RentalType:          domain.RentalDaily,
		RepresentativeName:  "Alice",
		RepresentativePhone: "0900000001",
		CheckInDate:         "2026-03-01",
		CheckOutDate:        "2026-03-03",
		CheckInTime:         "14:00",
		CheckOutTime:        "12:00",
		TotalAmount:         200000,
		Status:              domain.BookingConfirmed,
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.True(t, IsUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: invoices.invoice_number")))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
}

func TestBookingRepository_CreateAndReserve(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	rooms := NewRoomRepository(db)
	bookings := NewBookingRepository(db)

	room := seedRoom(t, db, "101", domain.RoomAvailable)

	b := newBooking(room.ID)
	require.NoError(t, bookings.CreateAndReserve(ctx, b))
	assert.NotZero(t, b.ID)

	got, err := rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomReserved, got.Status)

	err = bookings.CreateAndReserve(ctx, newBooking(room.ID))
	assert.ErrorIs(t, err, ErrRoomNotAvailable)

	err = bookings.CreateAndReserve(ctx, newBooking(9999))
	assert.True(t, IsNotFound(err))

	_, total, err := bookings.List(ctx, BookingFilters{RoomID: room.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestBookingRepository_TransitionRejectsStaleStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	room := seedRoom(t, db, "102", domain.RoomAvailable)
	b := newBooking(room.ID)
	require.NoError(t, bookings.CreateAndReserve(ctx, b))

	occupied := domain.RoomOccupied
	b.Status = domain.BookingCheckedIn
	require.NoError(t, bookings.Transition(ctx, b, domain.BookingConfirmed, &occupied))

	again := *b
	err := bookings.Transition(ctx, &again, domain.BookingConfirmed, &occupied)
	assert.ErrorIs(t, err, ErrStale)

	stored, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, stored.Status)
	require.NotNil(t, stored.Room)
	assert.Equal(t, domain.RoomOccupied, stored.Room.Status)
}

func TestBookingRepository_UpdateWritesOnlyNamedColumns(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)

	room := seedRoom(t, db, "104", domain.RoomAvailable)
	b := newBooking(room.ID)
	require.NoError(t, bookings.CreateAndReserve(ctx, b))

	// A copy loaded before check-in, edited after it committed.
	loaded := *b
	occupied := domain.RoomOccupied
	arrived := time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC)
	b.Status = domain.BookingCheckedIn
	b.ActualCheckIn = &arrived
	require.NoError(t, bookings.Transition(ctx, b, domain.BookingConfirmed, &occupied))

	loaded.Notes = "late edit"
	err := bookings.Update(ctx, &loaded, "notes")
	assert.ErrorIs(t, err, ErrStale)

	stored, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedIn, stored.Status)
	require.NotNil(t, stored.ActualCheckIn)
	assert.Empty(t, stored.Notes)

	// A fresh copy goes through, and unnamed columns are left alone.
	stored.Notes = "vip"
	stored.TotalAmount = 1
	require.NoError(t, bookings.Update(ctx, stored, "notes"))

	again, err := bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "vip", again.Notes)
	assert.Equal(t, 200000.0, again.TotalAmount)
	assert.Equal(t, domain.BookingCheckedIn, again.Status)

	missing := newBooking(room.ID)
	missing.ID = 9999
	assert.True(t, IsNotFound(bookings.Update(ctx, missing, "notes")))
}

func TestBookingRepository_LatestByRoomAndStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	bookings := NewBookingRepository(db)
	room := seedRoom(t, db, "103", domain.RoomAvailable)

	first := newBooking(room.ID)
	second := newBooking(room.ID)
	testutil.Save(t, db, first)
	testutil.Save(t, db, second)

	got, err := bookings.LatestByRoomAndStatus(ctx, room.ID, domain.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)

	_, err = bookings.LatestByRoomAndStatus(ctx, room.ID, domain.BookingCheckedIn)
	assert.True(t, IsNotFound(err))

	n, err := bookings.CountByRoomAndStatus(ctx, room.ID, domain.BookingConfirmed, domain.BookingCheckedIn)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestInvoiceRepository_LastNumberWithPrefix(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	invoices := NewInvoiceRepository(db)

	last, err := invoices.LastNumberWithPrefix(ctx, "INV2603")
	require.NoError(t, err)
	assert.Empty(t, last)

	for _, n := range []string{"INV26030001", "INV26030002", "INV26040001"} {
		require.NoError(t, invoices.Create(ctx, &domain.Invoice{
			InvoiceNumber: n,
			BookingID:     1,
			TotalAmount:   1000,
			PaymentStatus: domain.PaymentPending,
			Status:        domain.InvoiceDraft,
		}))
	}

	last, err = invoices.LastNumberWithPrefix(ctx, "INV2603")
	require.NoError(t, err)
	assert.Equal(t, "INV26030002", last)

	require.NoError(t, invoices.Create(ctx, &domain.Invoice{
		InvoiceNumber: "INV260310000",
		BookingID:     1,
		TotalAmount:   1000,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.InvoiceDraft,
	}))
	last, err = invoices.LastNumberWithPrefix(ctx, "INV2603")
	require.NoError(t, err)
	assert.Equal(t, "INV260310000", last)

	err = invoices.Create(ctx, &domain.Invoice{
		InvoiceNumber: "INV26030002",
		BookingID:     1,
		TotalAmount:   1000,
		PaymentStatus: domain.PaymentPending,
		Status:        domain.InvoiceDraft,
	})
	assert.True(t, IsUniqueViolation(err))
}

func TestCustomerRepository_Search(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	customers := NewCustomerRepository(db)

	require.NoError(t, customers.Create(ctx, &domain.Customer{FullName: "Nguyen Van A", Phone: "0901"}))
	require.NoError(t, customers.Create(ctx, &domain.Customer{FullName: "Tran Thi B", Phone: "0902", Email: "b@example.com"}))

	list, total, err := customers.List(ctx, "example", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Tran Thi B", list[0].FullName)

	err = customers.Create(ctx, &domain.Customer{FullName: "Dup", Phone: "0901"})
	assert.True(t, IsUniqueViolation(err))

	got, err := customers.GetByPhone(ctx, "0902")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
}
