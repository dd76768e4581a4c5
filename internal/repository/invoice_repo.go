package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"resortdesk/internal/domain"
)

type InvoiceFilters struct {
	PaymentStatus domain.InvoicePaymentStatus
	Status        domain.InvoiceStatus
	BookingID     int64
	From          *time.Time
	To            *time.Time
	Limit         int
	Offset        int
}

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) List(ctx context.Context, f InvoiceFilters) ([]domain.Invoice, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Invoice{})

	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.BookingID > 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var invoices []domain.Invoice
	err := paginate(q, f.Limit, f.Offset).
		Order("created_at DESC, id DESC").
		Find(&invoices).Error
	return invoices, total, err
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	var inv domain.Invoice
	if err := r.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// LastNumberWithPrefix returns the highest invoice number starting with
// prefix, or "" when there is none. Longer numbers sort higher, so a
// sequence that outgrew its padding is still found.
func (r *InvoiceRepository) LastNumberWithPrefix(ctx context.Context, prefix string) (string, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("LENGTH(invoice_number) DESC, invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &numbers).Error
	if err != nil || len(numbers) == 0 {
		return "", err
	}
	return numbers[0], nil
}

func (r *InvoiceRepository) Create(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r *InvoiceRepository) Update(ctx context.Context, inv *domain.Invoice) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r *InvoiceRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Invoice{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
