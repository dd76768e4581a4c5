package invoice

import (
	"context"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

type InvoiceRepository interface {
	List(ctx context.Context, f repository.InvoiceFilters) ([]domain.Invoice, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	LastNumberWithPrefix(ctx context.Context, prefix string) (string, error)
	Create(ctx context.Context, inv *domain.Invoice) error
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id int64) error
}

type BookingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}
