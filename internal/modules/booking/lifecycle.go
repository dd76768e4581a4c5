package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
	"resortdesk/internal/modules/billing"
	"resortdesk/internal/repository"
)

// CheckIn moves a confirmed booking to checked-in and occupies its room.
// Another booking already occupying the room is not detected here.
func (s *Service) CheckIn(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed {
		return nil, ErrInvalidTransition.With("cannot check in a %s booking", b.Status)
	}

	now := s.now()
	b.Status = domain.BookingCheckedIn
	b.ActualCheckIn = &now

	occupied := domain.RoomOccupied
	if err := s.transition(ctx, b, domain.BookingConfirmed, &occupied); err != nil {
		return nil, err
	}

	s.notifyRoom(ctx, b.Room, domain.RoomOccupied, b.ID, "guest checked in")
	if b.Room != nil {
		b.Room.Status = domain.RoomOccupied
	}

	s.log.Info("booking checked in", zap.Int64("booking_id", b.ID), zap.Int64("room_id", b.RoomID))
	events.Emit(ctx, s.events, s.log, events.BookingCheckedIn, bookingPayload(b))
	return b, nil
}

// CheckOut settles a checked-in booking and reconciles its room.
//
// Base amount by priority: the supplied custom amount (extra charges are
// ignored), the pre-calculated total, or a real-time quote from the actual
// check-in until now. Extra charges are the accumulated service lines plus
// the request's extra charges.
func (s *Service) CheckOut(ctx context.Context, id int64, req CheckoutRequest) (*CheckoutResult, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingCheckedIn {
		return nil, ErrInvalidTransition.With("cannot check out a %s booking", b.Status)
	}
	if req.ExtraCharges < 0 {
		return nil, ErrInvalidAmount.With("extraCharges must not be negative")
	}

	now := s.now()
	res := &CheckoutResult{Booking: b}

	switch {
	case req.UseCustomAmount:
		if req.CustomAmount == nil || *req.CustomAmount <= 0 {
			return nil, ErrInvalidAmount.With("customAmount must be positive when useCustomAmount is set")
		}
		custom := *req.CustomAmount
		b.CheckoutMode = domain.CheckoutCustom
		b.CustomAmount = &custom
		b.BaseAmount = custom
		b.ExtraCharges = 0
		b.FinalAmount = custom

	case req.UsePreCalculated:
		b.CheckoutMode = domain.CheckoutPreCalculated
		b.BaseAmount = b.TotalAmount
		b.ExtraCharges = b.ServiceCharges + req.ExtraCharges
		b.FinalAmount = b.BaseAmount + b.ExtraCharges

	default:
		q, err := s.quoteElapsed(ctx, b, now)
		if err != nil {
			return nil, err
		}
		res.Quote = &q
		b.CheckoutMode = domain.CheckoutRealtime
		b.BaseAmount = q.Amount
		b.ExtraCharges = b.ServiceCharges + req.ExtraCharges
		b.FinalAmount = b.BaseAmount + b.ExtraCharges
	}

	b.Status = domain.BookingCheckedOut
	b.ActualCheckOut = &now
	if note := strings.TrimSpace(req.Notes); note != "" {
		b.Notes = joinNotes(b.Notes, note)
	}

	if err := s.transition(ctx, b, domain.BookingCheckedIn, nil); err != nil {
		return nil, err
	}

	res.RoomChange = s.reconcile(ctx, b.RoomID)
	if res.RoomChange != nil && b.Room != nil {
		b.Room.Status = res.RoomChange.To
	}

	s.log.Info("booking checked out",
		zap.Int64("booking_id", b.ID),
		zap.String("mode", string(b.CheckoutMode)),
		zap.Float64("base_amount", b.BaseAmount),
		zap.Float64("extra_charges", b.ExtraCharges),
		zap.Float64("final_amount", b.FinalAmount),
	)
	events.Emit(ctx, s.events, s.log, events.BookingCheckedOut, bookingPayload(b))
	return res, nil
}

// Cancel cancels any booking that is not already cancelled or checked out.
func (s *Service) Cancel(ctx context.Context, id int64, req CancelRequest) (*domain.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, ErrInvalidTransition.With("cannot cancel a %s booking", b.Status)
	}

	from := b.Status
	now := s.now()
	b.Status = domain.BookingCancelled
	b.CancelledAt = &now
	b.CancellationReason = strings.TrimSpace(req.Reason)

	if err := s.transition(ctx, b, from, nil); err != nil {
		return nil, err
	}

	if change := s.reconcile(ctx, b.RoomID); change != nil && b.Room != nil {
		b.Room.Status = change.To
	}

	s.log.Info("booking cancelled", zap.Int64("booking_id", b.ID), zap.String("reason", b.CancellationReason))
	events.Emit(ctx, s.events, s.log, events.BookingCancelled, bookingPayload(b))
	return b, nil
}

// OverrideStatus is the administrative escape hatch: it sets any known status
// without checking the transition graph, then reconciles the room.
func (s *Service) OverrideStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	target, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, ErrInvalidStatus.With("%s", err.Error())
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := b.Status
	if from == target {
		return b, nil
	}

	now := s.now()
	b.Status = target
	switch target {
	case domain.BookingCheckedIn:
		if b.ActualCheckIn == nil {
			b.ActualCheckIn = &now
		}
	case domain.BookingCheckedOut:
		if b.ActualCheckOut == nil {
			b.ActualCheckOut = &now
		}
	case domain.BookingCancelled:
		if b.CancelledAt == nil {
			b.CancelledAt = &now
		}
	}

	if err := s.transition(ctx, b, from, nil); err != nil {
		return nil, err
	}

	if change := s.reconcile(ctx, b.RoomID); change != nil && b.Room != nil {
		b.Room.Status = change.To
	}

	s.log.Warn("booking status overridden",
		zap.Int64("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	return b, nil
}

func (s *Service) transition(ctx context.Context, b *domain.Booking, from domain.BookingStatus, room *domain.RoomStatus) error {
	err := s.bookings.Transition(ctx, b, from, room)
	if errors.Is(err, repository.ErrStale) {
		return ErrBookingChanged
	}
	return err
}

// save writes the named columns of b. It fails with ErrBookingChanged when
// the booking's status moved on since b was loaded.
func (s *Service) save(ctx context.Context, b *domain.Booking, columns ...string) error {
	err := s.bookings.Update(ctx, b, columns...)
	switch {
	case errors.Is(err, repository.ErrStale):
		return ErrBookingChanged
	case repository.IsNotFound(err):
		return ErrBookingNotFound
	}
	return err
}

// quoteElapsed prices the stay from the actual (or planned) check-in until.
func (s *Service) quoteElapsed(ctx context.Context, b *domain.Booking, until time.Time) (billing.Quote, error) {
	room, err := s.roomOf(ctx, b)
	if err != nil {
		return billing.Quote{}, err
	}

	start, err := s.stayStart(b)
	if err != nil {
		return billing.Quote{}, err
	}
	// a clock earlier than the recorded check-in still bills one unit
	if until.Before(start) {
		until = start
	}

	return s.calc.Quote(billing.Input{
		RentalType:   b.RentalType,
		CheckIn:      start,
		CheckOut:     &until,
		Price:        room.Price,
		MonthlyPrice: room.MonthlyPrice,
	})
}

func (s *Service) stayStart(b *domain.Booking) (time.Time, error) {
	if b.ActualCheckIn != nil {
		return *b.ActualCheckIn, nil
	}
	start, err := b.PlannedCheckIn(s.cfg.Location)
	if err != nil {
		return time.Time{}, ErrInvalidDate.With("%s", err.Error())
	}
	return start, nil
}

func joinNotes(existing, note string) string {
	if existing == "" {
		return note
	}
	return existing + "\n" + note
}
