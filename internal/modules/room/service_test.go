package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
	"resortdesk/internal/pkg/apperr"
	"resortdesk/internal/repository"
	"resortdesk/internal/statuslog"
	"resortdesk/internal/testutil"
)

type recordingBroadcaster struct {
	mu      sync.Mutex
	changes []domain.RoomStatusChange
}

func (r *recordingBroadcaster) PublishRoomStatus(c domain.RoomStatusChange) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
}

type fixture struct {
	db       *gorm.DB
	svc      *Service
	bookings *repository.BookingRepository
	live     *recordingBroadcaster
	events   *events.Recorder
	history  *statuslog.GormStore
}

func newFixture(t *testing.T, preserveManual bool) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:       db,
		bookings: repository.NewBookingRepository(db),
		live:     &recordingBroadcaster{},
		events:   &events.Recorder{},
		history:  statuslog.NewGormStore(db),
	}
	f.svc = NewService(Dependencies{
		Rooms:          repository.NewRoomRepository(db),
		Bookings:       f.bookings,
		History:        f.history,
		Live:           f.live,
		Events:         f.events,
		PreserveManual: preserveManual,
	})
	return f
}

func (f *fixture) room(t *testing.T, number string, status domain.RoomStatus) *domain.Room {
	t.Helper()
	r, err := f.svc.Create(context.Background(), CreateRoomRequest{
		RoomNumber: number, Type: "double", Price: 100000, Status: string(status),
	})
	require.NoError(t, err)
	return r
}

func (f *fixture) booking(t *testing.T, roomID int64, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	b := &domain.Booking{
		RoomID:              roomID,
		BookingType:         domain.BookingIndividual,
		RentalType:          domain.RentalDaily,
		RepresentativeName:  "Guest",
		RepresentativePhone: "0900",
		CheckInDate:         "2026-03-01",
		Status:              status,
	}
	testutil.Save(t, f.db, b)
	return b
}

func (f *fixture) status(t *testing.T, id int64) domain.RoomStatus {
	t.Helper()
	r, err := f.svc.Get(context.Background(), id)
	require.NoError(t, err)
	return r.Status
}

func TestReconcile_DerivesStatusFromBookings(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	room := f.room(t, "101", domain.RoomAvailable)

	change, err := f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	assert.Nil(t, change, "already consistent")

	confirmed := f.booking(t, room.ID, domain.BookingConfirmed)
	change, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomAvailable, change.From)
	assert.Equal(t, domain.RoomReserved, change.To)
	assert.Equal(t, confirmed.ID, *change.BookingID)

	checkedIn := f.booking(t, room.ID, domain.BookingCheckedIn)
	change, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomOccupied, change.To)
	assert.Equal(t, checkedIn.ID, *change.BookingID)

	change, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	assert.Nil(t, change, "idempotent")

	checkedIn.Status = domain.BookingCheckedOut
	testutil.Save(t, f.db, checkedIn)
	_, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomReserved, f.status(t, room.ID))

	confirmed.Status = domain.BookingCancelled
	testutil.Save(t, f.db, confirmed)
	_, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, f.status(t, room.ID))

	assert.Len(t, f.live.changes, 4)
	logs, err := f.history.ListByRoom(ctx, room.ID, 0)
	require.NoError(t, err)
	assert.Len(t, logs, 4)
	assert.Contains(t, f.events.Types(), events.RoomStatusChanged)
}

func TestReconcile_OverwritesManualStatusByDefault(t *testing.T) {
	f := newFixture(t, false)
	room := f.room(t, "102", domain.RoomMaintenance)

	change, err := f.svc.Reconcile(context.Background(), room.ID)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomMaintenance, change.From)
	assert.Equal(t, domain.RoomAvailable, change.To)
}

func TestReconcile_PreserveManualOption(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	room := f.room(t, "103", domain.RoomCleaning)

	change, err := f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	assert.Nil(t, change)
	assert.Equal(t, domain.RoomCleaning, f.status(t, room.ID))

	// An active booking still wins over the manual flag.
	f.booking(t, room.ID, domain.BookingConfirmed)
	change, err = f.svc.Reconcile(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, change)
	assert.Equal(t, domain.RoomReserved, change.To)
}

func TestReconcileAll_ReportsEveryChange(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	a := f.room(t, "201", domain.RoomAvailable)
	b := f.room(t, "202", domain.RoomReserved)
	c := f.room(t, "203", domain.RoomAvailable)
	f.booking(t, a.ID, domain.BookingCheckedIn)
	f.booking(t, c.ID, domain.BookingConfirmed)

	changes, err := f.svc.ReconcileAll(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 3)

	byRoom := map[int64]domain.RoomStatus{}
	for _, ch := range changes {
		byRoom[ch.RoomID] = ch.To
	}
	assert.Equal(t, domain.RoomOccupied, byRoom[a.ID])
	assert.Equal(t, domain.RoomAvailable, byRoom[b.ID])
	assert.Equal(t, domain.RoomReserved, byRoom[c.ID])

	changes, err = f.svc.ReconcileAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	room := f.room(t, "301", domain.RoomAvailable)

	got, err := f.svc.SetStatus(ctx, room.ID, UpdateStatusRequest{Status: "maintenance", Reason: "broken AC"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomMaintenance, got.Status)
	require.Len(t, f.live.changes, 1)
	assert.Equal(t, domain.StatusSourceOverride, f.live.changes[0].Source)
	assert.Equal(t, "broken AC", f.live.changes[0].Reason)

	_, err = f.svc.SetStatus(ctx, room.ID, UpdateStatusRequest{Status: "dirty"})
	assert.ErrorIs(t, err, ErrInvalidRoomStatus)

	f.booking(t, room.ID, domain.BookingCheckedIn)
	_, err = f.svc.SetStatus(ctx, room.ID, UpdateStatusRequest{Status: "cleaning"})
	assert.ErrorIs(t, err, ErrRoomOccupied)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	got, err = f.svc.SetStatus(ctx, room.ID, UpdateStatusRequest{Status: "occupied"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, got.Status)

	_, err = f.svc.SetStatus(ctx, 9999, UpdateStatusRequest{Status: "available"})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateUpdateDelete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	room := f.room(t, "401", "")
	assert.Equal(t, domain.RoomAvailable, room.Status)
	assert.NotNil(t, room.Amenities)

	_, err := f.svc.Create(ctx, CreateRoomRequest{RoomNumber: "401", Type: "suite", Price: 1})
	assert.ErrorIs(t, err, ErrRoomNumberTaken)

	_, err = f.svc.Create(ctx, CreateRoomRequest{RoomNumber: "402", Type: "villa", Price: 1})
	assert.ErrorIs(t, err, ErrInvalidRoomType)

	price := 250000.0
	desc := "sea view"
	updated, err := f.svc.Update(ctx, room.ID, UpdateRoomRequest{Price: &price, Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 250000.0, updated.Price)

	reloaded, err := f.svc.Get(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "sea view", reloaded.Description)

	b := f.booking(t, room.ID, domain.BookingConfirmed)
	assert.ErrorIs(t, f.svc.Delete(ctx, room.ID), ErrRoomHasActiveBookings)

	b.Status = domain.BookingCheckedOut
	testutil.Save(t, f.db, b)
	assert.ErrorIs(t, f.svc.Delete(ctx, room.ID), ErrRoomHasHistory)
}

func TestDelete_KeepsRoomsReferencedByBookings(t *testing.T) {
	f := newFixture(t, false)
	testutil.EnforceForeignKeys(t, f.db)
	ctx := context.Background()

	for i, st := range []domain.BookingStatus{domain.BookingCheckedOut, domain.BookingCancelled} {
		room := f.room(t, fmt.Sprintf("90%d", i+1), domain.RoomAvailable)
		f.booking(t, room.ID, st)

		err := f.svc.Delete(ctx, room.ID)
		assert.ErrorIs(t, err, ErrRoomHasHistory, st)

		_, err = f.svc.Get(ctx, room.ID)
		assert.NoError(t, err, "room with %s booking must survive", st)
	}

	unused := f.room(t, "999", domain.RoomAvailable)
	require.NoError(t, f.svc.Delete(ctx, unused.ID))
	_, err := f.svc.Get(ctx, unused.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

type mockBookingReader struct {
	mock.Mock
}

func (m *mockBookingReader) LatestByRoomAndStatus(ctx context.Context, roomID int64, status domain.BookingStatus) (*domain.Booking, error) {
	args := m.Called(ctx, roomID, status)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingReader) CountByRoomAndStatus(ctx context.Context, roomID int64, statuses ...domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, roomID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func TestReconcile_PropagatesStoreErrors(t *testing.T) {
	db := testutil.NewDB(t)
	bookings := new(mockBookingReader)
	svc := NewService(Dependencies{Rooms: repository.NewRoomRepository(db), Bookings: bookings})

	room, err := svc.Create(context.Background(), CreateRoomRequest{RoomNumber: "501", Type: "single", Price: 1})
	require.NoError(t, err)

	boom := errors.New("db down")
	bookings.On("LatestByRoomAndStatus", mock.Anything, room.ID, domain.BookingCheckedIn).Return(nil, boom)

	_, err = svc.Reconcile(context.Background(), room.ID)
	assert.ErrorIs(t, err, boom)
	bookings.AssertExpectations(t)
}
