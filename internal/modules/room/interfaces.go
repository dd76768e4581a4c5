package room

import (
	"context"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

type RoomRepository interface {
	List(ctx context.Context, f repository.RoomFilters) ([]domain.Room, error)
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error
}

// BookingReader is the slice of the booking store reconciliation needs.
type BookingReader interface {
	LatestByRoomAndStatus(ctx context.Context, roomID int64, status domain.BookingStatus) (*domain.Booking, error)
	CountByRoomAndStatus(ctx context.Context, roomID int64, statuses ...domain.BookingStatus) (int64, error)
}

// StatusBroadcaster pushes changes to live clients.
type StatusBroadcaster interface {
	PublishRoomStatus(change domain.RoomStatusChange)
}
