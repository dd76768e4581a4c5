package room

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/repository"
	"resortdesk/internal/statuslog"
)

type Dependencies struct {
	Rooms    RoomRepository
	Bookings BookingReader
	History  statuslog.Store
	Live     StatusBroadcaster
	Events   events.Publisher
	Logger   *zap.Logger
	// PreserveManual keeps maintenance/cleaning when reconciliation finds
	// no active booking.
	PreserveManual bool
}

type Service struct {
	rooms          RoomRepository
	bookings       BookingReader
	history        statuslog.Store
	live           StatusBroadcaster
	events         events.Publisher
	log            *zap.Logger
	preserveManual bool
	now            func() time.Time
}

func NewService(d Dependencies) *Service {
	return &Service{
		rooms:          d.Rooms,
		bookings:       d.Bookings,
		history:        d.History,
		live:           d.Live,
		events:         d.Events,
		log:            logger.OrNop(d.Logger),
		preserveManual: d.PreserveManual,
		now:            time.Now,
	}
}

func (s *Service) List(ctx context.Context, f repository.RoomFilters) ([]domain.Room, error) {
	return s.rooms.List(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*domain.Room, error) {
	roomType, err := domain.ParseRoomType(req.Type)
	if err != nil {
		return nil, ErrInvalidRoomType
	}

	status := domain.RoomAvailable
	if req.Status != "" {
		if status, err = domain.ParseRoomStatus(req.Status); err != nil {
			return nil, ErrInvalidRoomStatus
		}
	}

	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	room := &domain.Room{
		RoomNumber:   strings.TrimSpace(req.RoomNumber),
		Type:         roomType,
		Status:       status,
		Price:        req.Price,
		MonthlyPrice: req.MonthlyPrice,
		Floor:        req.Floor,
		Capacity:     req.Capacity,
		Description:  req.Description,
		Amenities:    req.Amenities,
	}
	if room.Amenities == nil {
		room.Amenities = []string{}
	}

	if err := s.rooms.Create(ctx, room); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}

	s.log.Info("room created", zap.Int64("room_id", room.ID), zap.String("room_number", room.RoomNumber))
	return room, nil
}

// Update changes descriptive fields. Status is left to SetStatus and reconciliation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*domain.Room, error) {
	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		room.RoomNumber = strings.TrimSpace(*req.RoomNumber)
	}
	if req.Type != nil {
		if room.Type, err = domain.ParseRoomType(*req.Type); err != nil {
			return nil, ErrInvalidRoomType
		}
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		room.Price = *req.Price
	}
	if req.MonthlyPrice != nil {
		// zero clears the monthly price
		if *req.MonthlyPrice == 0 {
			room.MonthlyPrice = nil
		} else {
			room.MonthlyPrice = req.MonthlyPrice
		}
	}
	if req.Floor != nil {
		room.Floor = *req.Floor
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Description != nil {
		room.Description = *req.Description
	}
	if req.Amenities != nil {
		room.Amenities = *req.Amenities
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, err
	}
	return room, nil
}

// Delete removes a room no booking has ever referenced. Rooms with open
// bookings get ErrRoomHasActiveBookings, rooms with past ones ErrRoomHasHistory.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.bookings.CountByRoomAndStatus(ctx, id, domain.BookingConfirmed, domain.BookingCheckedIn)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrRoomHasActiveBookings
	}

	past, err := s.bookings.CountByRoomAndStatus(ctx, id, domain.BookingPending, domain.BookingCheckedOut, domain.BookingCancelled)
	if err != nil {
		return err
	}
	if past > 0 {
		return ErrRoomHasHistory
	}

	if err := s.rooms.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrRoomNotFound
		}
		return err
	}

	s.log.Info("room deleted", zap.Int64("room_id", id))
	return nil
}

// SetStatus is the administrative status override. While a guest is checked
// in the only accepted target is occupied.
func (s *Service) SetStatus(ctx context.Context, id int64, req UpdateStatusRequest) (*domain.Room, error) {
	status, err := domain.ParseRoomStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidRoomStatus.With("unknown room status %q", req.Status)
	}

	room, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if status != domain.RoomOccupied {
		checkedIn, err := s.bookings.CountByRoomAndStatus(ctx, id, domain.BookingCheckedIn)
		if err != nil {
			return nil, err
		}
		if checkedIn > 0 {
			return nil, ErrRoomOccupied
		}
	}

	if room.Status == status {
		return room, nil
	}

	if err := s.rooms.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = "manual status change"
	}
	s.Notify(ctx, domain.RoomStatusChange{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		From:       room.Status,
		To:         status,
		Reason:     reason,
		Source:     domain.StatusSourceOverride,
		At:         s.now(),
	})

	room.Status = status
	return room, nil
}

func (s *Service) History(ctx context.Context, id int64, limit int) ([]domain.RoomStatusLog, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if s.history == nil {
		return []domain.RoomStatusLog{}, nil
	}
	return s.history.ListByRoom(ctx, id, limit)
}

// Notify fans a status change out to the history store, live clients, the
// event bus and the log. Failures are logged only.
func (s *Service) Notify(ctx context.Context, change domain.RoomStatusChange) {
	if change.At.IsZero() {
		change.At = s.now()
	}

	s.log.Info("room status changed",
		zap.Int64("room_id", change.RoomID),
		zap.String("room_number", change.RoomNumber),
		zap.String("from", string(change.From)),
		zap.String("to", string(change.To)),
		zap.String("source", change.Source),
		zap.String("reason", change.Reason),
	)

	if s.history != nil {
		if err := s.history.Record(ctx, change); err != nil {
			s.log.Warn("record room status history", zap.Int64("room_id", change.RoomID), zap.Error(err))
		}
	}
	if s.live != nil {
		s.live.PublishRoomStatus(change)
	}
	events.Emit(ctx, s.events, s.log, events.RoomStatusChanged, change)
}
