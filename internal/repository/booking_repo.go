package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"resortdesk/internal/domain"
)

type BookingFilters struct {
	Status      domain.BookingStatus
	RoomID      int64
	CustomerID  int64
	RentalType  domain.RentalType
	BookingType domain.BookingType
	// From and To bound checkInDate (YYYY-MM-DD, inclusive).
	From   string
	To     string
	Query  string
	Limit  int
	Offset int
}

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// List returns bookings with optional filters, newest first
func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.RoomID > 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.CustomerID > 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.RentalType != "" {
		q = q.Where("rental_type = ?", f.RentalType)
	}
	if f.BookingType != "" {
		q = q.Where("booking_type = ?", f.BookingType)
	}
	if f.From != "" {
		q = q.Where("check_in_date >= ?", f.From)
	}
	if f.To != "" {
		q = q.Where("check_in_date <= ?", f.To)
	}
	if f.Query != "" {
		like := "%" + f.Query + "%"
		q = q.Where("representative_name LIKE ? OR representative_phone LIKE ? OR company_name LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	err := paginate(q, f.Limit, f.Offset).
		Preload("Room").
		Order("created_at DESC, id DESC").
		Find(&bookings).Error

	return bookings, total, err
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).Preload("Room").First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// LatestByRoomAndStatus returns the most recently created booking of the room
// in the given status, or ErrNotFound.
func (r *BookingRepository) LatestByRoomAndStatus(ctx context.Context, roomID int64, status domain.BookingStatus) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_id = ? AND status = ?", roomID, status).
		Order("created_at DESC, id DESC").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) CountByRoomAndStatus(ctx context.Context, roomID int64, statuses ...domain.BookingStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, statuses).
		Count(&n).Error
	return n, err
}

// CreateAndReserve inserts the booking and flips its room from available to
// reserved in one transaction.
func (r *BookingRepository) CreateAndReserve(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Room{}).
			Where("id = ? AND status = ?", b.RoomID, domain.RoomAvailable).
			Update("status", domain.RoomReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var n int64
			if err := tx.Model(&domain.Room{}).Where("id = ?", b.RoomID).Count(&n).Error; err != nil {
				return err
			}
			if n == 0 {
				return ErrNotFound
			}
			return ErrRoomNotAvailable
		}

		return tx.Omit(clause.Associations).Create(b).Error
	})
}

// Transition saves b only if its stored status is still from, and sets the
// room status when roomStatus is not nil. Returns ErrStale when the stored
// status moved on.
func (r *BookingRepository) Transition(ctx context.Context, b *domain.Booking, from domain.BookingStatus, roomStatus *domain.RoomStatus) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(b).
			Where("status = ?", from).
			Select("*").
			Omit("id", "created_at", clause.Associations).
			Updates(b)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}

		if roomStatus == nil {
			return nil
		}
		return tx.Model(&domain.Room{}).
			Where("id = ?", b.RoomID).
			Update("status", *roomStatus).Error
	})
}

// Update writes the named columns of b while the stored status still equals
// b.Status, so an edit never reverts a concurrent check-in or checkout.
// Returns ErrStale when the status moved on.
func (r *BookingRepository) Update(ctx context.Context, b *domain.Booking, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	selected := append([]string{"updated_at"}, columns...)

	res := r.db.WithContext(ctx).
		Model(b).
		Where("status = ?", b.Status).
		Select(selected).
		Omit(clause.Associations).
		Updates(b)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&domain.Booking{}).Where("id = ?", b.ID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrStale
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
