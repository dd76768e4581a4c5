package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"resortdesk/internal/domain"
)

type StatusCount struct {
	Status string
	Count  int64
}

// RevenueEntry is one amount collected at a point in time.
type RevenueEntry struct {
	At     time.Time
	Amount float64
}

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

func (r *DashboardRepository) RoomStatusCounts(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *DashboardRepository) BookingStatusCounts(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// ExpectedCheckIns counts confirmed bookings arriving on date (YYYY-MM-DD).
func (r *DashboardRepository) ExpectedCheckIns(ctx context.Context, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("check_in_date = ? AND status = ?", date, domain.BookingConfirmed).
		Count(&n).Error
	return n, err
}

// ExpectedCheckOuts counts checked-in bookings due to leave on date.
func (r *DashboardRepository) ExpectedCheckOuts(ctx context.Context, date string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("check_out_date = ? AND status = ?", date, domain.BookingCheckedIn).
		Count(&n).Error
	return n, err
}

// CheckoutRevenue lists final amounts of bookings checked out in [from, to).
func (r *DashboardRepository) CheckoutRevenue(ctx context.Context, from, to time.Time) ([]RevenueEntry, error) {
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Select("id", "actual_check_out", "final_amount").
		Where("status = ? AND actual_check_out >= ? AND actual_check_out < ?", domain.BookingCheckedOut, from, to).
		Order("actual_check_out ASC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}

	out := make([]RevenueEntry, 0, len(bookings))
	for _, b := range bookings {
		if b.ActualCheckOut == nil {
			continue
		}
		out = append(out, RevenueEntry{At: *b.ActualCheckOut, Amount: b.FinalAmount})
	}
	return out, nil
}

// InvoicePayments lists collected invoice amounts whose latest payment falls in [from, to).
func (r *DashboardRepository) InvoicePayments(ctx context.Context, from, to time.Time) ([]RevenueEntry, error) {
	var invoices []domain.Invoice
	err := r.db.WithContext(ctx).
		Select("id", "payment_date", "paid_amount").
		Where("paid_amount > 0 AND payment_status <> ?", domain.PaymentRefunded).
		Where("payment_date >= ? AND payment_date < ?", from, to).
		Order("payment_date ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}

	out := make([]RevenueEntry, 0, len(invoices))
	for _, inv := range invoices {
		if inv.PaymentDate == nil {
			continue
		}
		out = append(out, RevenueEntry{At: *inv.PaymentDate, Amount: inv.PaidAmount})
	}
	return out, nil
}

// OutstandingBalance sums unpaid amounts of open invoices.
func (r *DashboardRepository) OutstandingBalance(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Select("COALESCE(SUM(total_amount - paid_amount), 0)").
		Where("payment_status IN ? AND status <> ?",
			[]domain.InvoicePaymentStatus{domain.PaymentPending, domain.PaymentPartial},
			domain.InvoiceCancelled).
		Scan(&total).Error
	return total, err
}
