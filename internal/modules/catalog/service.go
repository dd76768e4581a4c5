// Package catalog manages the extra services (laundry, minibar, transfers)
// that staff can add to a booking.
package catalog

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/apperr"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/repository"
)

var (
	ErrServiceNotFound = apperr.New(apperr.ErrNotFound, "SERVICE_NOT_FOUND", "service not found")
	ErrNameTaken       = apperr.New(apperr.ErrInvalidState, "SERVICE_NAME_TAKEN", "a service with this name already exists")
	ErrInvalidPrice    = apperr.New(apperr.ErrInvalidInput, "INVALID_PRICE", "price must not be negative")
	ErrMissingName     = apperr.New(apperr.ErrInvalidInput, "SERVICE_NAME_REQUIRED", "name is required")
)

type ServiceRepository interface {
	List(ctx context.Context, category string, active *bool) ([]domain.ExtraService, error)
	GetByID(ctx context.Context, id int64) (*domain.ExtraService, error)
	Create(ctx context.Context, s *domain.ExtraService) error
	Update(ctx context.Context, s *domain.ExtraService) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo ServiceRepository
	log  *zap.Logger
}

func NewService(repo ServiceRepository, log *zap.Logger) *Service {
	return &Service{repo: repo, log: logger.OrNop(log)}
}

func (s *Service) List(ctx context.Context, category string, active *bool) ([]domain.ExtraService, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(category), active)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.ExtraService{}
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ExtraService, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return item, nil
}

func (s *Service) Create(ctx context.Context, req CreateServiceRequest) (*domain.ExtraService, error) {
	item := &domain.ExtraService{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Price:       req.Price,
		Unit:        strings.TrimSpace(req.Unit),
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := validate(item); err != nil {
		return nil, err
	}

	active := item.IsActive
	if err := s.repo.Create(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	// a false IsActive is replaced by the column default on insert
	if !active {
		item.IsActive = false
		if err := s.repo.Update(ctx, item); err != nil {
			return nil, err
		}
	}

	s.log.Info("service created", zap.Int64("service_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*domain.ExtraService, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		item.Category = strings.TrimSpace(*req.Category)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Unit != nil {
		item.Unit = strings.TrimSpace(*req.Unit)
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if err := validate(item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrNameTaken
		}
		return nil, err
	}
	return item, nil
}

// Delete removes the catalog entry. Service lines already added to bookings
// keep their copied name and price.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrServiceNotFound
		}
		return err
	}
	s.log.Info("service deleted", zap.Int64("service_id", id))
	return nil
}

func validate(item *domain.ExtraService) error {
	if item.Name == "" {
		return ErrMissingName
	}
	if item.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}
