package repository

import (
	"context"

	"gorm.io/gorm"

	"resortdesk/internal/domain"
)

type RoomFilters struct {
	Status domain.RoomStatus
	Type   domain.RoomType
	Floor  *int
}

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) List(ctx context.Context, f RoomFilters) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Floor != nil {
		q = q.Where("floor = ?", *f.Floor)
	}

	var rooms []domain.Room
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

// Update writes descriptive fields only; status has its own path.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).
		Model(room).
		Select("room_number", "type", "price", "monthly_price", "floor", "capacity", "description", "amenities").
		Updates(room).Error
}

func (r *RoomRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
