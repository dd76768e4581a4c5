package repository

import (
	"context"

	"gorm.io/gorm"

	"resortdesk/internal/domain"
)

type ExtraServiceRepository struct {
	db *gorm.DB
}

func NewExtraServiceRepository(db *gorm.DB) *ExtraServiceRepository {
	return &ExtraServiceRepository{db: db}
}

func (r *ExtraServiceRepository) List(ctx context.Context, category string, active *bool) ([]domain.ExtraService, error) {
	q := r.db.WithContext(ctx).Model(&domain.ExtraService{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}

	var services []domain.ExtraService
	err := q.Order("category ASC, name ASC").Find(&services).Error
	return services, err
}

func (r *ExtraServiceRepository) GetByID(ctx context.Context, id int64) (*domain.ExtraService, error) {
	var s domain.ExtraService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ExtraServiceRepository) Create(ctx context.Context, s *domain.ExtraService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// Update uses Select("*") so IsActive=false is written.
func (r *ExtraServiceRepository) Update(ctx context.Context, s *domain.ExtraService) error {
	return r.db.WithContext(ctx).Model(s).Select("*").Omit("id", "created_at").Updates(s).Error
}

func (r *ExtraServiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.ExtraService{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
