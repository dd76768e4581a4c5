package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/domain"
	"resortdesk/internal/events"
	"resortdesk/internal/modules/billing"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/pkg/utils"
	"resortdesk/internal/repository"
)

const (
	companyRepresentativePlaceholder = "Company representative"
	notAvailablePlaceholder          = "N/A"
)

type Config struct {
	Location            *time.Location
	DefaultCheckInTime  string
	DefaultCheckOutTime string
}

type Dependencies struct {
	Bookings   BookingRepository
	Rooms      RoomRepository
	Customers  CustomerRepository
	Catalog    ServiceCatalog
	RoomStatus RoomStatusSync
	Calculator *billing.Calculator
	Events     events.Publisher
	Logger     *zap.Logger
	Config     Config
}

type Service struct {
	bookings   BookingRepository
	rooms      RoomRepository
	customers  CustomerRepository
	catalog    ServiceCatalog
	roomStatus RoomStatusSync
	calc       *billing.Calculator
	events     events.Publisher
	log        *zap.Logger
	cfg        Config
	now        func() time.Time
}

func NewService(d Dependencies) *Service {
	cfg := d.Config
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DefaultCheckInTime == "" {
		cfg.DefaultCheckInTime = "14:00"
	}
	if cfg.DefaultCheckOutTime == "" {
		cfg.DefaultCheckOutTime = "12:00"
	}
	calc := d.Calculator
	if calc == nil {
		calc = billing.NewCalculator(billing.DefaultTariff())
	}

	return &Service{
		bookings:   d.Bookings,
		rooms:      d.Rooms,
		customers:  d.Customers,
		catalog:    d.Catalog,
		roomStatus: d.RoomStatus,
		calc:       calc,
		events:     d.Events,
		log:        logger.OrNop(d.Logger),
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	bookings, total, err := s.bookings.List(ctx, p.Filters)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	return &ListResult{Bookings: bookings, Total: total, Page: p.Page, Limit: p.Filters.Limit}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

// CreateBooking books an available room. The booking row and the room's
// switch to reserved are written in one transaction.
func (s *Service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	bookingType := domain.BookingIndividual
	if req.BookingType != "" {
		bookingType = domain.BookingType(req.BookingType)
		if bookingType != domain.BookingIndividual && bookingType != domain.BookingCompany {
			return nil, ErrInvalidBookingType
		}
	}

	rentalType, err := domain.ParseRentalType(req.RentalType)
	if err != nil {
		return nil, billing.ErrUnsupportedRentalType.With("%s", err.Error())
	}

	b := &domain.Booking{
		RoomID:                 req.RoomID,
		CustomerID:             req.CustomerID,
		BookingType:            bookingType,
		RentalType:             rentalType,
		RepresentativeName:     strings.TrimSpace(req.RepresentativeName),
		RepresentativePhone:    strings.TrimSpace(req.RepresentativePhone),
		RepresentativeIDNumber: strings.TrimSpace(req.RepresentativeIDNumber),
		RepresentativeEmail:    strings.TrimSpace(req.RepresentativeEmail),
		CompanyName:            strings.TrimSpace(req.CompanyName),
		CompanyTaxCode:         strings.TrimSpace(req.CompanyTaxCode),
		CompanyAddress:         strings.TrimSpace(req.CompanyAddress),
		Guests:                 toGuests(req.Guests),
		CheckInDate:            req.CheckInDate,
		CheckOutDate:           req.CheckOutDate,
		CheckInTime:            req.CheckInTime,
		CheckOutTime:           req.CheckOutTime,
		ServiceLines:           []domain.ServiceLine{},
		Status:                 domain.BookingConfirmed,
		NotificationStatus:     domain.NotificationNotSubmitted,
		Notes:                  req.Notes,
	}

	if err := s.applyIdentityRules(b); err != nil {
		return nil, err
	}
	if err := s.normalizeStay(b); err != nil {
		return nil, err
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if room.Status != domain.RoomAvailable {
		return nil, ErrRoomNotAvailable.With("room %s is %s", room.RoomNumber, room.Status)
	}

	if req.CustomPricing {
		if req.CustomTotalAmount == nil || *req.CustomTotalAmount <= 0 {
			return nil, ErrInvalidAmount.With("customTotalAmount must be positive when customPricing is set")
		}
		b.CustomPricing = true
		b.TotalAmount = *req.CustomTotalAmount
	} else {
		q, err := s.quotePlanned(b, room)
		if err != nil {
			return nil, err
		}
		b.TotalAmount = q.Amount
	}

	if err := s.linkCustomer(ctx, b); err != nil {
		return nil, err
	}

	if err := s.bookings.CreateAndReserve(ctx, b); err != nil {
		switch {
		case repository.IsNotFound(err):
			return nil, ErrRoomNotFound
		case errors.Is(err, repository.ErrRoomNotAvailable):
			return nil, ErrRoomNotAvailable
		}
		return nil, err
	}

	s.notifyRoom(ctx, room, domain.RoomReserved, b.ID, "booking created")
	room.Status = domain.RoomReserved
	b.Room = room

	s.log.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("room_id", b.RoomID),
		zap.String("rental_type", string(b.RentalType)),
		zap.Float64("total_amount", b.TotalAmount),
	)
	events.Emit(ctx, s.events, s.log, events.BookingCreated, bookingPayload(b))

	return b, nil
}

// editableColumns are the booking columns Update may change.
var editableColumns = []string{
	"representative_name", "representative_phone", "representative_id_number", "representative_email",
	"company_name", "company_tax_code", "company_address",
	"guests", "notes",
	"check_in_date", "check_out_date", "check_in_time", "check_out_time",
	"total_amount",
}

// Update edits contact data and the planned stay of an open booking. The
// pre-calculated total follows date changes unless pricing is custom.
func (s *Service) Update(ctx context.Context, id int64, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, ErrBookingClosed
	}

	setString(&b.RepresentativeName, req.RepresentativeName)
	setString(&b.RepresentativePhone, req.RepresentativePhone)
	setString(&b.RepresentativeIDNumber, req.RepresentativeIDNumber)
	setString(&b.RepresentativeEmail, req.RepresentativeEmail)
	setString(&b.CompanyName, req.CompanyName)
	setString(&b.CompanyTaxCode, req.CompanyTaxCode)
	setString(&b.CompanyAddress, req.CompanyAddress)
	if req.Notes != nil {
		b.Notes = *req.Notes
	}
	if req.Guests != nil {
		b.Guests = toGuests(*req.Guests)
	}

	stayChanged := req.CheckInDate != nil || req.CheckOutDate != nil || req.CheckInTime != nil || req.CheckOutTime != nil
	setString(&b.CheckInDate, req.CheckInDate)
	setString(&b.CheckOutDate, req.CheckOutDate)
	setString(&b.CheckInTime, req.CheckInTime)
	setString(&b.CheckOutTime, req.CheckOutTime)

	if err := s.applyIdentityRules(b); err != nil {
		return nil, err
	}
	if err := s.normalizeStay(b); err != nil {
		return nil, err
	}

	if stayChanged && !b.CustomPricing {
		room, err := s.roomOf(ctx, b)
		if err != nil {
			return nil, err
		}
		q, err := s.quotePlanned(b, room)
		if err != nil {
			return nil, err
		}
		b.TotalAmount = q.Amount
	}

	if err := s.save(ctx, b, editableColumns...); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes a booking that is not checked in and reconciles its room.
func (s *Service) Delete(ctx context.Context, id int64) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == domain.BookingCheckedIn {
		return ErrBookingCheckedIn
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrBookingNotFound
		}
		return err
	}

	s.log.Info("booking deleted", zap.Int64("booking_id", id), zap.Int64("room_id", b.RoomID))
	s.reconcile(ctx, b.RoomID)
	return nil
}

func (s *Service) applyIdentityRules(b *domain.Booking) error {
	switch b.BookingType {
	case domain.BookingCompany:
		if b.CompanyName == "" {
			return ErrMissingCompanyName
		}
		if b.RepresentativeName == "" {
			b.RepresentativeName = companyRepresentativePlaceholder
		}
		if b.RepresentativePhone == "" {
			b.RepresentativePhone = notAvailablePlaceholder
		}
	default:
		if b.RepresentativeName == "" || b.RepresentativePhone == "" {
			return ErrMissingRepresentative
		}
	}
	return nil
}

// normalizeStay validates dates and times and fills default times.
func (s *Service) normalizeStay(b *domain.Booking) error {
	if b.CheckInDate == "" {
		return ErrInvalidDate.With("checkInDate is required")
	}
	if _, err := utils.ParseDate("checkInDate", b.CheckInDate); err != nil {
		return ErrInvalidDate.With("%s", err.Error())
	}
	if _, err := utils.ParseDate("checkOutDate", b.CheckOutDate); err != nil {
		return ErrInvalidDate.With("%s", err.Error())
	}
	if _, err := utils.ParseClock("checkInTime", b.CheckInTime); err != nil {
		return ErrInvalidDate.With("%s", err.Error())
	}
	if _, err := utils.ParseClock("checkOutTime", b.CheckOutTime); err != nil {
		return ErrInvalidDate.With("%s", err.Error())
	}

	if b.CheckInTime == "" {
		b.CheckInTime = s.cfg.DefaultCheckInTime
	}
	if b.CheckOutDate != "" && b.CheckOutTime == "" {
		b.CheckOutTime = s.cfg.DefaultCheckOutTime
	}
	return nil
}

func (s *Service) quotePlanned(b *domain.Booking, room *domain.Room) (billing.Quote, error) {
	in, err := b.PlannedCheckIn(s.cfg.Location)
	if err != nil {
		return billing.Quote{}, ErrInvalidDate.With("%s", err.Error())
	}
	out, err := b.PlannedCheckOut(s.cfg.Location)
	if err != nil {
		return billing.Quote{}, ErrInvalidDate.With("%s", err.Error())
	}
	return s.calc.Quote(billing.Input{
		RentalType:   b.RentalType,
		CheckIn:      in,
		CheckOut:     out,
		Price:        room.Price,
		MonthlyPrice: room.MonthlyPrice,
	})
}

// linkCustomer attaches individual bookings to a customer record matched by
// representative phone, creating one when needed.
func (s *Service) linkCustomer(ctx context.Context, b *domain.Booking) error {
	if s.customers == nil {
		return nil
	}

	if b.CustomerID != nil {
		if _, err := s.customers.GetByID(ctx, *b.CustomerID); err != nil {
			if repository.IsNotFound(err) {
				return ErrCustomerNotFound
			}
			return err
		}
		return nil
	}

	if b.BookingType != domain.BookingIndividual {
		return nil
	}

	c, err := s.customers.GetByPhone(ctx, b.RepresentativePhone)
	if err == nil {
		b.CustomerID = &c.ID
		return nil
	}
	if !repository.IsNotFound(err) {
		return err
	}

	c = &domain.Customer{
		FullName: b.RepresentativeName,
		Phone:    b.RepresentativePhone,
		Email:    b.RepresentativeEmail,
		IDNumber: b.RepresentativeIDNumber,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		if !repository.IsUniqueViolation(err) {
			return err
		}
		// created concurrently by another booking
		if c, err = s.customers.GetByPhone(ctx, b.RepresentativePhone); err != nil {
			return err
		}
	}
	b.CustomerID = &c.ID
	return nil
}

func (s *Service) roomOf(ctx context.Context, b *domain.Booking) (*domain.Room, error) {
	if b.Room != nil {
		return b.Room, nil
	}
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	b.Room = room
	return room, nil
}

func (s *Service) notifyRoom(ctx context.Context, room *domain.Room, to domain.RoomStatus, bookingID int64, reason string) {
	if s.roomStatus == nil || room == nil || room.Status == to {
		return
	}
	id := bookingID
	s.roomStatus.Notify(ctx, domain.RoomStatusChange{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		From:       room.Status,
		To:         to,
		Reason:     reason,
		BookingID:  &id,
		Source:     domain.StatusSourceBooking,
		At:         s.now(),
	})
}

// reconcile runs room reconciliation after a booking change. The booking
// change is already committed, so failures are logged only.
func (s *Service) reconcile(ctx context.Context, roomID int64) *domain.RoomStatusChange {
	if s.roomStatus == nil {
		return nil
	}
	change, err := s.roomStatus.Reconcile(ctx, roomID)
	if err != nil {
		s.log.Warn("room reconciliation failed", zap.Int64("room_id", roomID), zap.Error(err))
		return nil
	}
	return change
}

func toGuests(in []GuestInput) []domain.Guest {
	out := make([]domain.Guest, 0, len(in))
	for _, g := range in {
		out = append(out, domain.Guest{
			Name:        strings.TrimSpace(g.Name),
			IDNumber:    g.IDNumber,
			Phone:       g.Phone,
			Nationality: g.Nationality,
		})
	}
	return out
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func bookingPayload(b *domain.Booking) map[string]any {
	return map[string]any{
		"bookingId":   b.ID,
		"roomId":      b.RoomID,
		"status":      b.Status,
		"rentalType":  b.RentalType,
		"totalAmount": b.TotalAmount,
		"finalAmount": b.FinalAmount,
	}
}
