package invoice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/pkg/utils"
	"resortdesk/internal/repository"
)

const (
	numberPrefix   = "INV"
	numberAttempts = 3
	maxSequence    = 9999
	// amounts are compared with this tolerance to absorb float rounding
	epsilon = 1e-6
)

type Dependencies struct {
	Invoices InvoiceRepository
	Bookings BookingReader
	Events   events.Publisher
	Logger   *zap.Logger
	Location *time.Location
}

type Service struct {
	invoices InvoiceRepository
	bookings BookingReader
	events   events.Publisher
	log      *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(d Dependencies) *Service {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		invoices: d.Invoices,
		bookings: d.Bookings,
		events:   d.Events,
		log:      logger.OrNop(d.Logger),
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	invoices, total, err := s.invoices.List(ctx, p.Filters)
	if err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return &ListResult{Invoices: invoices, Total: total, Page: p.Page, Limit: p.Filters.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

// Create issues an invoice for a booking. Customer, room and stay data are
// copied from the booking and never re-synced afterwards.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*domain.Invoice, error) {
	status := domain.InvoiceDraft
	if req.Status != "" {
		st, err := parseEditableStatus(req.Status)
		if err != nil {
			return nil, err
		}
		status = st
	}
	if _, err := utils.ParseDate("dueDate", req.DueDate); err != nil {
		return nil, ErrInvalidDate.With("%s", err.Error())
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	inv := snapshot(b, s.loc)
	inv.Status = status
	inv.PaymentStatus = domain.PaymentPending
	inv.Discount = req.Discount
	inv.TaxAmount = req.TaxAmount
	inv.DueDate = req.DueDate
	inv.Notes = strings.TrimSpace(req.Notes)

	if len(req.Items) > 0 {
		inv.Items = toItems(req.Items)
	} else {
		inv.Items = bookingItems(b)
	}
	inv.Subtotal = sumItems(inv.Items)
	inv.TotalAmount = inv.Subtotal - inv.Discount + inv.TaxAmount
	if req.TotalAmount != nil && *req.TotalAmount > 0 {
		inv.TotalAmount = *req.TotalAmount
	}
	if inv.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}

	if err := s.insert(ctx, inv); err != nil {
		return nil, err
	}

	s.log.Info("invoice created",
		zap.Int64("invoice_id", inv.ID),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.Int64("booking_id", inv.BookingID),
		zap.Float64("total_amount", inv.TotalAmount),
	)
	events.Emit(ctx, s.events, s.log, events.InvoiceCreated, invoicePayload(inv))
	return inv, nil
}

// insert assigns the next number for the current month and retries when a
// concurrent create took the same number.
func (s *Service) insert(ctx context.Context, inv *domain.Invoice) error {
	var err error
	for attempt := 1; attempt <= numberAttempts; attempt++ {
		inv.ID = 0
		if inv.InvoiceNumber, err = s.nextNumber(ctx); err != nil {
			return err
		}
		if err = s.invoices.Create(ctx, inv); err == nil {
			return nil
		}
		if !repository.IsUniqueViolation(err) {
			return err
		}
		s.log.Warn("invoice number collision, retrying",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Int("attempt", attempt),
		)
	}
	return fmt.Errorf("allocate invoice number: %w", err)
}

// checkMutable rejects edits to settled invoices. A refund is final, so the
// refunded record is kept as issued.
func checkMutable(inv *domain.Invoice) error {
	switch inv.PaymentStatus {
	case domain.PaymentPaid:
		return ErrInvoicePaid
	case domain.PaymentRefunded:
		return ErrInvoiceRefunded
	}
	return nil
}

// nextNumber returns INV{YY}{MM}{seq}, seq being one past the highest number
// already issued this month, zero-padded to four digits. The sequence never
// widens: past 9999 creates fail with ErrNumbersExhausted until the month turns.
func (s *Service) nextNumber(ctx context.Context) (string, error) {
	now := s.now().In(s.loc)
	prefix := fmt.Sprintf("%s%02d%02d", numberPrefix, now.Year()%100, int(now.Month()))

	last, err := s.invoices.LastNumberWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}

	seq := 1
	if last != "" {
		n, err := strconv.Atoi(strings.TrimPrefix(last, prefix))
		if err != nil {
			return "", fmt.Errorf("parse invoice number %q: %w", last, err)
		}
		seq = n + 1
	}
	if seq > maxSequence {
		return "", ErrNumbersExhausted
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// Update edits an invoice that is neither paid nor refunded. Changing items
// or adjustments recomputes the total unless an explicit total is supplied.
func (s *Service) Update(ctx context.Context, id int64, req UpdateInvoiceRequest) (*domain.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkMutable(inv); err != nil {
		return nil, err
	}

	if req.Status != nil {
		st, err := parseEditableStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		inv.Status = st
	}
	if req.DueDate != nil {
		if _, err := utils.ParseDate("dueDate", *req.DueDate); err != nil {
			return nil, ErrInvalidDate.With("%s", err.Error())
		}
		inv.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = strings.TrimSpace(*req.Notes)
	}

	recompute := false
	if req.Items != nil {
		inv.Items = toItems(*req.Items)
		inv.Subtotal = sumItems(inv.Items)
		recompute = true
	}
	if req.Discount != nil {
		inv.Discount = *req.Discount
		recompute = true
	}
	if req.TaxAmount != nil {
		inv.TaxAmount = *req.TaxAmount
		recompute = true
	}
	if recompute {
		inv.TotalAmount = inv.Subtotal - inv.Discount + inv.TaxAmount
	}
	if req.TotalAmount != nil {
		inv.TotalAmount = *req.TotalAmount
	}

	if inv.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if inv.TotalAmount+epsilon < inv.PaidAmount {
		return nil, ErrTotalBelowPaid
	}

	if err := s.invoices.Update(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := checkMutable(inv); err != nil {
		return err
	}

	if err := s.invoices.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrInvoiceNotFound
		}
		return err
	}
	s.log.Info("invoice deleted", zap.Int64("invoice_id", id), zap.String("invoice_number", inv.InvoiceNumber))
	return nil
}

func parseEditableStatus(raw string) (domain.InvoiceStatus, error) {
	switch st := domain.InvoiceStatus(raw); st {
	case domain.InvoiceDraft, domain.InvoiceSent, domain.InvoiceCancelled:
		return st, nil
	}
	return "", ErrInvalidStatus
}

func snapshot(b *domain.Booking, loc *time.Location) *domain.Invoice {
	inv := &domain.Invoice{
		BookingID:       b.ID,
		CustomerName:    b.RepresentativeName,
		CustomerPhone:   b.RepresentativePhone,
		CustomerEmail:   b.RepresentativeEmail,
		CompanyName:     b.CompanyName,
		CompanyTaxCode:  b.CompanyTaxCode,
		CompanyAddress:  b.CompanyAddress,
		RentalType:      string(b.RentalType),
		StayCheckInDate: b.CheckInDate,
		StayCheckOutAt:  b.CheckOutDate,
	}
	if b.BookingType == domain.BookingCompany {
		inv.CustomerName = b.CompanyName
	}
	if b.ActualCheckOut != nil {
		inv.StayCheckOutAt = b.ActualCheckOut.In(loc).Format(domain.DateLayout)
	}
	if b.Room != nil {
		inv.RoomNumber = b.Room.RoomNumber
		inv.RoomType = string(b.Room.Type)
	}
	return inv
}

// bookingItems derives invoice lines from the booking: the stay itself, the
// service lines, and any extra charges entered at checkout.
func bookingItems(b *domain.Booking) []domain.InvoiceItem {
	stay := b.TotalAmount
	if b.FinalAmount > 0 {
		stay = b.BaseAmount
	}

	desc := fmt.Sprintf("Room stay (%s)", b.RentalType)
	if b.Room != nil {
		desc = fmt.Sprintf("Room %s stay (%s)", b.Room.RoomNumber, b.RentalType)
	}
	items := []domain.InvoiceItem{{Description: desc, Quantity: 1, UnitPrice: stay, Amount: stay}}

	if b.CheckoutMode == domain.CheckoutCustom {
		return items
	}

	for _, l := range b.ServiceLines {
		items = append(items, domain.InvoiceItem{
			Description: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Amount:      l.Amount,
		})
	}
	if extra := b.ExtraCharges - b.ServiceCharges; extra > epsilon {
		items = append(items, domain.InvoiceItem{Description: "Extra charges", Quantity: 1, UnitPrice: extra, Amount: extra})
	}
	return items
}

func toItems(in []ItemInput) []domain.InvoiceItem {
	out := make([]domain.InvoiceItem, 0, len(in))
	for _, it := range in {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		out = append(out, domain.InvoiceItem{
			Description: strings.TrimSpace(it.Description),
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
			Amount:      float64(qty) * it.UnitPrice,
		})
	}
	return out
}

func sumItems(items []domain.InvoiceItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}

func invoicePayload(inv *domain.Invoice) map[string]any {
	return map[string]any{
		"invoiceId":     inv.ID,
		"invoiceNumber": inv.InvoiceNumber,
		"bookingId":     inv.BookingID,
		"totalAmount":   inv.TotalAmount,
		"paidAmount":    inv.PaidAmount,
		"paymentStatus": inv.PaymentStatus,
	}
}
