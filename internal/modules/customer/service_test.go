package customer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
	"resortdesk/internal/testutil"
)

type fixture struct {
	db       *gorm.DB
	svc      *Service
	rooms    *repository.RoomRepository
	bookings *repository.BookingRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	bookings := repository.NewBookingRepository(db)
	return &fixture{
		db:       db,
		svc:      NewService(repository.NewCustomerRepository(db), bookings, nil),
		rooms:    repository.NewRoomRepository(db),
		bookings: bookings,
	}
}

func TestCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CreateCustomerRequest{FullName: " Pham Thi D ", Phone: "0904", IDNumber: "0790001"})
	require.NoError(t, err)
	assert.Equal(t, "Pham Thi D", c.FullName)

	_, err = f.svc.Create(ctx, CreateCustomerRequest{FullName: "Dup", Phone: "0904"})
	assert.ErrorIs(t, err, ErrPhoneTaken)
	_, err = f.svc.Create(ctx, CreateCustomerRequest{FullName: "  ", Phone: "0905"})
	assert.ErrorIs(t, err, ErrMissingFields)

	other, err := f.svc.Create(ctx, CreateCustomerRequest{FullName: "Hoang E", Phone: "0906", Email: "e@example.com"})
	require.NoError(t, err)

	taken := "0904"
	_, err = f.svc.Update(ctx, other.ID, UpdateCustomerRequest{Phone: &taken})
	assert.ErrorIs(t, err, ErrPhoneTaken)

	addr := "12 Le Loi"
	updated, err := f.svc.Update(ctx, other.ID, UpdateCustomerRequest{Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "12 Le Loi", updated.Address)

	res, err := f.svc.List(ctx, "0790", 1, 20, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	assert.Equal(t, c.ID, res.Customers[0].ID)

	res, err = f.svc.List(ctx, "example.com", 1, 20, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)

	require.NoError(t, f.svc.Delete(ctx, other.ID))
	_, err = f.svc.Get(ctx, other.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestBookingsAndDeleteGuard(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.svc.Create(ctx, CreateCustomerRequest{FullName: "Vo F", Phone: "0907"})
	require.NoError(t, err)

	room := &domain.Room{RoomNumber: "401", Type: domain.RoomSingle, Status: domain.RoomReserved, Price: 1}
	require.NoError(t, f.rooms.Create(ctx, room))
	b := &domain.Booking{
		RoomID: room.ID, CustomerID: &c.ID, BookingType: domain.BookingIndividual,
		RentalType: domain.RentalDaily, RepresentativeName: "Vo F", RepresentativePhone: "0907",
		CheckInDate: "2026-05-01", Status: domain.BookingConfirmed,
	}
	testutil.Save(t, f.db, b)

	res, err := f.svc.Bookings(ctx, c.ID, 1, 20, 0)
	require.NoError(t, err)
	require.Len(t, res.Bookings, 1)
	assert.Equal(t, b.ID, res.Bookings[0].ID)

	assert.ErrorIs(t, f.svc.Delete(ctx, c.ID), ErrCustomerHasBookings)

	_, err = f.svc.Bookings(ctx, 999, 1, 20, 0)
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t)
	r := gin.New()
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodPost, "/api/v1/customers", map[string]any{"fullName": "Dang G", "phone": "0908", "email": "bad"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "email")

	rr = do(http.MethodPost, "/api/v1/customers", map[string]any{"fullName": "Dang G", "phone": "0908"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		Data domain.Customer `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))

	rr = do(http.MethodGet, fmt.Sprintf("/api/v1/customers/%d/bookings", created.Data.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"bookings":[]`)

	rr = do(http.MethodGet, "/api/v1/customers?q=Dang&page=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(http.MethodGet, "/api/v1/customers/777", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
