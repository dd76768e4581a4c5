// Package statuslog stores the history of room status changes.
package statuslog

import (
	"context"

	"gorm.io/gorm"

	"resortdesk/internal/domain"
)

const DefaultLimit = 50

type Store interface {
	Record(ctx context.Context, change domain.RoomStatusChange) error
	ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.RoomStatusLog, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Record(ctx context.Context, change domain.RoomStatusChange) error {
	entry := domain.NewRoomStatusLog(change)
	return s.db.WithContext(ctx).Create(&entry).Error
}

// ListByRoom returns the newest entries first.
func (s *GormStore) ListByRoom(ctx context.Context, roomID int64, limit int) ([]domain.RoomStatusLog, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	var logs []domain.RoomStatusLog
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
