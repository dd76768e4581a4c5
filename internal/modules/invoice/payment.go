package invoice

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
)

// ProcessPayment records a payment of 0 < amount <= balance. The invoice
// becomes paid once the paid amount reaches the total, partial otherwise.
// Method, date and notes reflect the most recent payment.
func (s *Service) ProcessPayment(ctx context.Context, id int64, req PaymentRequest) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case inv.Status == domain.InvoiceCancelled:
		return nil, ErrInvoiceCancelled
	case inv.PaymentStatus == domain.PaymentRefunded:
		return nil, ErrInvoiceRefunded
	}

	balance := inv.Balance()
	if req.Amount <= 0 || req.Amount > balance+epsilon {
		return nil, ErrInvalidPayment.With("payment must be between 0 and the balance of %.2f", balance)
	}

	paidAt := s.now()
	if req.PaymentDate != nil {
		paidAt = *req.PaymentDate
	}

	inv.PaidAmount += req.Amount
	inv.PaymentMethod = strings.TrimSpace(req.Method)
	inv.PaymentDate = &paidAt
	inv.PaymentNotes = strings.TrimSpace(req.Notes)
	if inv.PaidAmount+epsilon >= inv.TotalAmount {
		inv.PaidAmount = inv.TotalAmount
		inv.PaymentStatus = domain.PaymentPaid
		inv.Status = domain.InvoicePaid
	} else {
		inv.PaymentStatus = domain.PaymentPartial
	}

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info("invoice payment recorded",
		zap.Int64("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Float64("amount", req.Amount),
		zap.Float64("paid_amount", inv.PaidAmount),
		zap.String("payment_status", string(inv.PaymentStatus)),
	)
	if inv.PaymentStatus == domain.PaymentPaid {
		events.Emit(ctx, s.events, s.log, events.InvoicePaid, invoicePayload(inv))
	}
	return inv, nil
}

// Refund marks an invoice with recorded payments as refunded.
func (s *Service) Refund(ctx context.Context, id int64, req RefundRequest) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.PaymentStatus == domain.PaymentRefunded {
		return nil, ErrInvoiceRefunded
	}
	if inv.PaidAmount <= 0 {
		return nil, ErrNothingToRefund
	}

	now := s.now()
	inv.PaymentStatus = domain.PaymentRefunded
	inv.RefundedAt = &now
	if note := strings.TrimSpace(req.Notes); note != "" {
		inv.PaymentNotes = note
	}

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info("invoice refunded",
		zap.Int64("invoice_id", inv.ID),
		zap.Float64("paid_amount", inv.PaidAmount),
	)
	return inv, nil
}
