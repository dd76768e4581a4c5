package room

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

// Reconcile derives the room's status from its bookings: the latest
// checked-in booking makes it occupied, otherwise the latest confirmed one
// makes it reserved, otherwise it is available. It writes and reports only
// when the stored status differs, so a nil change means already consistent.
func (s *Service) Reconcile(ctx context.Context, roomID int64) (*domain.RoomStatusChange, error) {
	room, err := s.Get(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.reconcile(ctx, room)
}

// ReconcileAll reconciles every room and returns the changes made.
func (s *Service) ReconcileAll(ctx context.Context) ([]domain.RoomStatusChange, error) {
	rooms, err := s.rooms.List(ctx, repository.RoomFilters{})
	if err != nil {
		return nil, err
	}

	changes := make([]domain.RoomStatusChange, 0)
	for i := range rooms {
		change, err := s.reconcile(ctx, &rooms[i])
		if err != nil {
			return changes, fmt.Errorf("reconcile room %d: %w", rooms[i].ID, err)
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}

	s.log.Info("room status sync finished", zap.Int("rooms", len(rooms)), zap.Int("changes", len(changes)))
	return changes, nil
}

func (s *Service) reconcile(ctx context.Context, room *domain.Room) (*domain.RoomStatusChange, error) {
	target, reason, bookingID, err := s.targetStatus(ctx, room)
	if err != nil {
		return nil, err
	}
	if target == room.Status {
		return nil, nil
	}

	if err := s.rooms.UpdateStatus(ctx, room.ID, target); err != nil {
		return nil, err
	}

	change := domain.RoomStatusChange{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		From:       room.Status,
		To:         target,
		Reason:     reason,
		BookingID:  bookingID,
		Source:     domain.StatusSourceReconcile,
		At:         s.now(),
	}
	room.Status = target

	s.Notify(ctx, change)
	return &change, nil
}

func (s *Service) targetStatus(ctx context.Context, room *domain.Room) (domain.RoomStatus, string, *int64, error) {
	b, err := s.latest(ctx, room.ID, domain.BookingCheckedIn)
	if err != nil {
		return "", "", nil, err
	}
	if b != nil {
		return domain.RoomOccupied, fmt.Sprintf("booking #%d is checked in", b.ID), &b.ID, nil
	}

	b, err = s.latest(ctx, room.ID, domain.BookingConfirmed)
	if err != nil {
		return "", "", nil, err
	}
	if b != nil {
		return domain.RoomReserved, fmt.Sprintf("booking #%d is confirmed", b.ID), &b.ID, nil
	}

	if s.preserveManual && room.Status.IsManual() {
		return room.Status, "", nil, nil
	}
	return domain.RoomAvailable, "no active booking", nil, nil
}

func (s *Service) latest(ctx context.Context, roomID int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, err := s.bookings.LatestByRoomAndStatus(ctx, roomID, status)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}
