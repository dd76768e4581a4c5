package booking

import (
	"context"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

// BookingRepository defines the interface for booking persistence
type BookingRepository interface {
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	CreateAndReserve(ctx context.Context, b *domain.Booking) error
	Transition(ctx context.Context, b *domain.Booking, from domain.BookingStatus, roomStatus *domain.RoomStatus) error
	Update(ctx context.Context, b *domain.Booking, columns ...string) error
	Delete(ctx context.Context, id int64) error
}

type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}

type ServiceCatalog interface {
	GetByID(ctx context.Context, id int64) (*domain.ExtraService, error)
}

// RoomStatusSync is implemented by the room service.
type RoomStatusSync interface {
	Reconcile(ctx context.Context, roomID int64) (*domain.RoomStatusChange, error)
	Notify(ctx context.Context, change domain.RoomStatusChange)
}
