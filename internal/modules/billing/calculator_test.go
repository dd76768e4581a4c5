package billing

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/apperr"
)

var day0 = time.Date(2026, 3, 1, 14, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := day0.Add(d)
	return &t
}

func ptr(v float64) *float64 { return &v }

func TestQuote_HourlyTiers(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		elapsed time.Duration
		hours   int
		amount  float64
	}{
		{time.Hour, 1, 80000},
		{2 * time.Hour, 2, 120000},
		{6 * time.Hour, 6, 200000},
		{61 * time.Minute, 2, 120000},
		{time.Second, 1, 80000},
		{0, 1, 80000},
		{3*time.Hour + time.Nanosecond, 4, 160000},
	}

	for _, tc := range cases {
		q, err := calc.Quote(Input{RentalType: domain.RentalHourly, CheckIn: day0, CheckOut: at(tc.elapsed)})
		require.NoError(t, err, tc.elapsed)
		assert.Equal(t, tc.hours, q.Units, tc.elapsed)
		assert.Equal(t, tc.amount, q.Amount, tc.elapsed)
		assert.Len(t, q.Breakdown, tc.hours)
	}
}

func TestHourlyAmountFormula(t *testing.T) {
	calc := NewCalculator(Tariff{})
	for hours := 1; hours <= 48; hours++ {
		want := 80000.0
		if hours >= 2 {
			want += 40000
		}
		if hours > 2 {
			want += float64(hours-2) * 20000
		}
		assert.Equal(t, want, calc.HourlyAmount(hours), "hours=%d", hours)
	}
}

func TestQuote_LongHourlyStayKeepsBreakdownBounded(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	cases := []struct {
		hours int
		lines int
	}{
		{24, 24},
		{25, 25},
		{72, 25},
		{200 * 365 * 24, 25},
	}

	for _, tc := range cases {
		q, err := calc.Quote(Input{RentalType: domain.RentalHourly, CheckIn: day0, CheckOut: at(time.Duration(tc.hours) * time.Hour)})
		require.NoError(t, err, tc.hours)
		assert.Equal(t, tc.hours, q.Units)
		assert.Equal(t, 120000+float64(tc.hours-2)*20000, q.Amount, tc.hours)
		assert.Len(t, q.Breakdown, tc.lines, tc.hours)
		assert.Equal(t, calc.HourlyAmount(tc.hours), q.Amount)

		if tc.hours > 24 {
			last := q.Breakdown[len(q.Breakdown)-1]
			assert.Equal(t, fmt.Sprintf("Hours 25-%d", tc.hours), last.Description)
			assert.Equal(t, tc.hours-24, last.Quantity)
			assert.Equal(t, 20000.0, last.UnitPrice)
		}
	}
}

func TestQuote_HourlyWithoutCheckoutBillsOneHour(t *testing.T) {
	q, err := NewCalculator(DefaultTariff()).Quote(Input{RentalType: domain.RentalHourly, CheckIn: day0})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Units)
	assert.Equal(t, 80000.0, q.Amount)
}

func TestQuote_Daily(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	q, err := calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, CheckOut: at(2 * Day), Price: 150000})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Units)
	assert.Equal(t, 300000.0, q.Amount)

	q, err = calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, CheckOut: at(Day), Price: 150000})
	require.NoError(t, err)
	assert.Equal(t, 150000.0, q.Amount)

	q, err = calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, CheckOut: at(Day + time.Minute), Price: 150000})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Units)

	q, err = calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, Price: 150000})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Units)
	assert.Equal(t, 150000.0, q.Amount)
}

func TestQuote_MonthlyFallsBackToPriceMultiplier(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	q, err := calc.Quote(Input{RentalType: domain.RentalMonthly, CheckIn: day0, CheckOut: at(31 * Day), Price: 100000})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Units)
	assert.Equal(t, 2*100000*25.0, q.Amount)

	q, err = calc.Quote(Input{RentalType: domain.RentalMonthly, CheckIn: day0, CheckOut: at(30 * Day), Price: 100000, MonthlyPrice: ptr(2000000)})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Units)
	assert.Equal(t, 2000000.0, q.Amount)

	q, err = calc.Quote(Input{RentalType: domain.RentalMonthly, CheckIn: day0, Price: 100000})
	require.NoError(t, err)
	assert.Equal(t, 1, q.Units)
	assert.Equal(t, 2500000.0, q.Amount)
}

func TestQuote_Errors(t *testing.T) {
	calc := NewCalculator(DefaultTariff())

	_, err := calc.Quote(Input{RentalType: "weekly", CheckIn: day0, Price: 1})
	assert.True(t, errors.Is(err, ErrUnsupportedRentalType))
	assert.True(t, errors.Is(err, apperr.ErrInvalidInput))

	_, err = calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, CheckOut: at(-time.Hour), Price: 1})
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = calc.Quote(Input{RentalType: domain.RentalDaily, CheckIn: day0, Price: 0})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = calc.Quote(Input{RentalType: domain.RentalMonthly, CheckIn: day0})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestNewCalculator_CustomTariff(t *testing.T) {
	calc := NewCalculator(Tariff{FirstHour: 100, SecondHour: 50, NextHours: 10, MonthlyMultiplier: 20})

	q, err := calc.Quote(Input{RentalType: domain.RentalHourly, CheckIn: day0, CheckOut: at(4 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, 170.0, q.Amount)

	assert.Equal(t, 2000.0, calc.MonthlyPrice(100, nil))
}

func TestCeilUnits(t *testing.T) {
	assert.Equal(t, 1, CeilUnits(-time.Hour, time.Hour))
	assert.Equal(t, 1, CeilUnits(time.Hour, time.Hour))
	assert.Equal(t, 2, CeilUnits(time.Hour+1, time.Hour))
	assert.Equal(t, 3, CeilUnits(2*Day+time.Second, Day))
}
