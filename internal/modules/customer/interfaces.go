package customer

import (
	"context"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

type CustomerRepository interface {
	List(ctx context.Context, query string, limit, offset int) ([]domain.Customer, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

type BookingLister interface {
	List(ctx context.Context, f repository.BookingFilters) ([]domain.Booking, int64, error)
}
