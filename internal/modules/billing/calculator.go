// Package billing prices a stay from its rental type and elapsed time.
// Elapsed time is always rounded up to the next whole unit.
package billing

import (
	"fmt"
	"time"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/apperr"
)

const (
	Day   = 24 * time.Hour
	Month = 30 * Day
)

var (
	ErrUnsupportedRentalType = apperr.New(apperr.ErrInvalidInput, "UNSUPPORTED_RENTAL_TYPE", "unsupported rental type")
	ErrInvalidPeriod         = apperr.New(apperr.ErrInvalidInput, "INVALID_PERIOD", "check-out must not be before check-in")
	ErrInvalidPrice          = apperr.New(apperr.ErrInvalidInput, "INVALID_PRICE", "room price must be positive")
)

// Tariff holds the hourly tiers and the monthly fallback multiplier.
type Tariff struct {
	FirstHour         float64
	SecondHour        float64
	NextHours         float64
	MonthlyMultiplier float64
}

func DefaultTariff() Tariff {
	return Tariff{
		FirstHour:         80000,
		SecondHour:        40000,
		NextHours:         20000,
		MonthlyMultiplier: 25,
	}
}

type Input struct {
	RentalType   domain.RentalType
	CheckIn      time.Time
	CheckOut     *time.Time
	Price        float64
	MonthlyPrice *float64
}

type Line struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

type Quote struct {
	RentalType domain.RentalType `json:"rentalType"`
	Units      int               `json:"units"`
	Unit       string            `json:"unit"`
	Amount     float64           `json:"amount"`
	Breakdown  []Line            `json:"breakdown"`
	CheckIn    time.Time         `json:"checkIn"`
	CheckOut   *time.Time        `json:"checkOut,omitempty"`
}

type Calculator struct {
	tariff Tariff
}

// NewCalculator fills zero tariff fields with the defaults.
func NewCalculator(t Tariff) *Calculator {
	def := DefaultTariff()
	if t.FirstHour <= 0 {
		t.FirstHour = def.FirstHour
	}
	if t.SecondHour <= 0 {
		t.SecondHour = def.SecondHour
	}
	if t.NextHours <= 0 {
		t.NextHours = def.NextHours
	}
	if t.MonthlyMultiplier <= 0 {
		t.MonthlyMultiplier = def.MonthlyMultiplier
	}
	return &Calculator{tariff: t}
}

func (c *Calculator) Tariff() Tariff { return c.tariff }

func (c *Calculator) Quote(in Input) (Quote, error) {
	if in.CheckOut != nil && in.CheckOut.Before(in.CheckIn) {
		return Quote{}, ErrInvalidPeriod
	}

	q := Quote{RentalType: in.RentalType, CheckIn: in.CheckIn, CheckOut: in.CheckOut}

	switch in.RentalType {
	case domain.RentalHourly:
		q.Unit = "hour"
		q.Units = c.units(in, time.Hour)
		q.Breakdown = c.hourlyLines(q.Units)

	case domain.RentalDaily:
		if in.Price <= 0 {
			return Quote{}, ErrInvalidPrice
		}
		q.Unit = "day"
		q.Units = c.units(in, Day)
		q.Breakdown = []Line{{
			Description: "Daily rate",
			Quantity:    q.Units,
			UnitPrice:   in.Price,
			Amount:      float64(q.Units) * in.Price,
		}}

	case domain.RentalMonthly:
		monthly := c.MonthlyPrice(in.Price, in.MonthlyPrice)
		if monthly <= 0 {
			return Quote{}, ErrInvalidPrice
		}
		q.Unit = "month"
		q.Units = c.units(in, Month)
		q.Breakdown = []Line{{
			Description: "Monthly rate",
			Quantity:    q.Units,
			UnitPrice:   monthly,
			Amount:      float64(q.Units) * monthly,
		}}

	default:
		return Quote{}, ErrUnsupportedRentalType.With("unsupported rental type %q", in.RentalType)
	}

	for _, l := range q.Breakdown {
		q.Amount += l.Amount
	}
	return q, nil
}

// HourlyAmount is the tiered price of hours whole hours.
func (c *Calculator) HourlyAmount(hours int) float64 {
	if hours <= 0 {
		return 0
	}
	total := c.tariff.FirstHour
	if hours >= 2 {
		total += c.tariff.SecondHour
	}
	if hours > 2 {
		total += float64(hours-2) * c.tariff.NextHours
	}
	return total
}

// MonthlyPrice falls back to price times the multiplier when the room has
// no monthly price.
func (c *Calculator) MonthlyPrice(price float64, monthlyPrice *float64) float64 {
	if monthlyPrice != nil && *monthlyPrice > 0 {
		return *monthlyPrice
	}
	return price * c.tariff.MonthlyMultiplier
}

func (c *Calculator) units(in Input, unit time.Duration) int {
	if in.CheckOut == nil {
		return 1
	}
	return CeilUnits(in.CheckOut.Sub(in.CheckIn), unit)
}

// itemizedHours is how many hours get their own breakdown line; later hours
// share one line priced at NextHours.
const itemizedHours = 24

func (c *Calculator) hourlyLines(hours int) []Line {
	lines := make([]Line, 0, min(hours, itemizedHours+1))
	for h := 1; h <= hours && h <= itemizedHours; h++ {
		price := c.tariff.NextHours
		switch h {
		case 1:
			price = c.tariff.FirstHour
		case 2:
			price = c.tariff.SecondHour
		}
		lines = append(lines, Line{
			Description: fmt.Sprintf("Hour %d", h),
			Quantity:    1,
			UnitPrice:   price,
			Amount:      price,
		})
	}
	if rest := hours - itemizedHours; rest > 0 {
		lines = append(lines, Line{
			Description: fmt.Sprintf("Hours %d-%d", itemizedHours+1, hours),
			Quantity:    rest,
			UnitPrice:   c.tariff.NextHours,
			Amount:      float64(rest) * c.tariff.NextHours,
		})
	}
	return lines
}

// CeilUnits rounds d up to whole units, never returning less than one.
func CeilUnits(d, unit time.Duration) int {
	if d <= 0 {
		return 1
	}
	n := int(d / unit)
	if d%unit != 0 {
		n++
	}
	return n
}
