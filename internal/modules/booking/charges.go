package booking

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/repository"
)

// UpdateAmount overwrites the pre-calculated total.
func (s *Service) UpdateAmount(ctx context.Context, id int64, amount float64) (*domain.Booking, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount.With("totalAmount must be positive")
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	old := b.TotalAmount
	b.TotalAmount = amount
	if err := s.save(ctx, b, "total_amount"); err != nil {
		return nil, err
	}

	s.log.Info("booking amount updated",
		zap.Int64("booking_id", b.ID),
		zap.Float64("old_amount", old),
		zap.Float64("new_amount", amount),
	)
	return b, nil
}

// CalculateRealAmount quotes the stay from the actual check-in (or planned
// check-in when the guest has not arrived) until checkOutAt, the recorded
// check-out, or now. Nothing is persisted.
func (s *Service) CalculateRealAmount(ctx context.Context, id int64, checkOutAt *time.Time) (*RealAmount, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	until := s.now()
	switch {
	case checkOutAt != nil:
		until = *checkOutAt
	case b.ActualCheckOut != nil:
		until = *b.ActualCheckOut
	}

	start, err := s.stayStart(b)
	if err != nil {
		return nil, err
	}
	q, err := s.quoteElapsed(ctx, b, until)
	if err != nil {
		return nil, err
	}

	elapsed := until.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}

	return &RealAmount{
		BookingID:       b.ID,
		Quote:           q,
		RealAmount:      q.Amount,
		PreCalculated:   b.TotalAmount,
		ServiceCharges:  b.ServiceCharges,
		EstimatedFinal:  q.Amount + b.ServiceCharges,
		Difference:      q.Amount - b.TotalAmount,
		ElapsedMinutes:  int64(elapsed / time.Minute),
		CalculatedUntil: until,
	}, nil
}

// AddService appends a catalog service line to an open booking. The amount
// is added to the booking's extra charges at checkout.
func (s *Service) AddService(ctx context.Context, id int64, req AddServiceRequest) (*domain.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed && b.Status != domain.BookingCheckedIn {
		return nil, ErrInvalidTransition.With("cannot add services to a %s booking", b.Status)
	}

	svc, err := s.catalog.GetByID(ctx, req.ServiceID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	line := domain.ServiceLine{
		ServiceID: svc.ID,
		Name:      svc.Name,
		Quantity:  qty,
		UnitPrice: svc.Price,
		Amount:    float64(qty) * svc.Price,
		AddedAt:   s.now(),
	}
	b.ServiceLines = append(b.ServiceLines, line)
	b.ServiceCharges += line.Amount

	if err := s.save(ctx, b, "service_lines", "service_charges"); err != nil {
		return nil, err
	}

	s.log.Info("service added to booking",
		zap.Int64("booking_id", b.ID),
		zap.Int64("service_id", svc.ID),
		zap.Int("quantity", qty),
		zap.Float64("amount", line.Amount),
	)
	return b, nil
}

// UpdateNotification records the accommodation notification state entered
// by staff after filing it with the authorities.
func (s *Service) UpdateNotification(ctx context.Context, id int64, req NotificationRequest) (*domain.Booking, error) {
	status, err := domain.ParseNotificationStatus(req.Status)
	if err != nil {
		return nil, ErrInvalidNotificationStatus
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	b.NotificationStatus = status
	b.NotificationReference = strings.TrimSpace(req.Reference)
	switch status {
	case domain.NotificationSubmitted:
		now := s.now()
		b.NotificationSubmittedAt = &now
	case domain.NotificationNotSubmitted:
		b.NotificationSubmittedAt = nil
	}

	if err := s.save(ctx, b, "notification_status", "notification_reference", "notification_submitted_at"); err != nil {
		return nil, err
	}
	return b, nil
}
