package customer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/repository"
)

type Service struct {
	customers CustomerRepository
	bookings  BookingLister
	log       *zap.Logger
}

func NewService(customers CustomerRepository, bookings BookingLister, log *zap.Logger) *Service {
	return &Service{customers: customers, bookings: bookings, log: logger.OrNop(log)}
}

// List searches name, phone, email and ID number.
func (s *Service) List(ctx context.Context, query string, page, limit, offset int) (*ListResult, error) {
	customers, total, err := s.customers.List(ctx, strings.TrimSpace(query), limit, offset)
	if err != nil {
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return &ListResult{Customers: customers, Total: total, Page: page, Limit: limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{
		FullName:    strings.TrimSpace(req.FullName),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		IDNumber:    strings.TrimSpace(req.IDNumber),
		Nationality: strings.TrimSpace(req.Nationality),
		Address:     strings.TrimSpace(req.Address),
		CompanyName: strings.TrimSpace(req.CompanyName),
		Notes:       req.Notes,
	}
	if c.FullName == "" || c.Phone == "" {
		return nil, ErrMissingFields
	}

	if err := s.customers.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	s.log.Info("customer created", zap.Int64("customer_id", c.ID))
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&c.FullName, req.FullName)
	set(&c.Phone, req.Phone)
	set(&c.Email, req.Email)
	set(&c.IDNumber, req.IDNumber)
	set(&c.Nationality, req.Nationality)
	set(&c.Address, req.Address)
	set(&c.CompanyName, req.CompanyName)
	if req.Notes != nil {
		c.Notes = *req.Notes
	}
	if c.FullName == "" || c.Phone == "" {
		return nil, ErrMissingFields
	}

	if err := s.customers.Update(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrPhoneTaken
		}
		return nil, err
	}
	return c, nil
}

// Delete removes a customer that no booking refers to.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	_, total, err := s.bookings.List(ctx, repository.BookingFilters{CustomerID: id, Limit: 1})
	if err != nil {
		return err
	}
	if total > 0 {
		return ErrCustomerHasBookings
	}

	if err := s.customers.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrCustomerNotFound
		}
		return err
	}
	s.log.Info("customer deleted", zap.Int64("customer_id", id))
	return nil
}

// Bookings lists the customer's bookings, newest first.
func (s *Service) Bookings(ctx context.Context, id int64, page, limit, offset int) (*BookingsResult, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	bookings, total, err := s.bookings.List(ctx, repository.BookingFilters{CustomerID: id, Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return &BookingsResult{Bookings: bookings, Total: total, Page: page, Limit: limit}, nil
}
