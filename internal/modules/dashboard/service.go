// Package dashboard serves the front-desk overview: room occupancy, today's
// arrivals and departures, and revenue series.
package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"resortdesk/internal/cache"
	"resortdesk/internal/domain"
	"resortdesk/internal/pkg/apperr"
	"resortdesk/internal/pkg/logger"
	"resortdesk/internal/repository"
)

const (
	GranularityDay   = "day"
	GranularityMonth = "month"

	maxDayBuckets   = 366
	maxMonthBuckets = 120
)

var (
	ErrInvalidGranularity = apperr.New(apperr.ErrInvalidInput, "INVALID_GRANULARITY", "granularity must be day or month")
	ErrInvalidRange       = apperr.New(apperr.ErrInvalidInput, "INVALID_RANGE", "invalid date range")
)

type Repository interface {
	RoomStatusCounts(ctx context.Context) ([]repository.StatusCount, error)
	BookingStatusCounts(ctx context.Context) ([]repository.StatusCount, error)
	ExpectedCheckIns(ctx context.Context, date string) (int64, error)
	ExpectedCheckOuts(ctx context.Context, date string) (int64, error)
	CheckoutRevenue(ctx context.Context, from, to time.Time) ([]repository.RevenueEntry, error)
	InvoicePayments(ctx context.Context, from, to time.Time) ([]repository.RevenueEntry, error)
	OutstandingBalance(ctx context.Context) (float64, error)
}

type RoomStats struct {
	Total         int64            `json:"total"`
	ByStatus      map[string]int64 `json:"byStatus"`
	OccupancyRate float64          `json:"occupancyRate"`
}

type TodayStats struct {
	Date              string `json:"date"`
	ExpectedCheckIns  int64  `json:"expectedCheckIns"`
	ExpectedCheckOuts int64  `json:"expectedCheckOuts"`
}

type RevenueStats struct {
	Today     float64 `json:"today"`
	ThisMonth float64 `json:"thisMonth"`
}

type Stats struct {
	Rooms              RoomStats        `json:"rooms"`
	Bookings           map[string]int64 `json:"bookings"`
	Today              TodayStats       `json:"today"`
	Revenue            RevenueStats     `json:"revenue"`
	OutstandingBalance float64          `json:"outstandingBalance"`
	GeneratedAt        time.Time        `json:"generatedAt"`
}

type RevenueQuery struct {
	Granularity string
	From        string
	To          string
}

// RevenuePoint separates stay revenue recognised at checkout from money
// collected through invoices; the two overlap for invoiced stays.
type RevenuePoint struct {
	Period          string  `json:"period"`
	CheckoutRevenue float64 `json:"checkoutRevenue"`
	Collected       float64 `json:"collected"`
}

type RevenueReport struct {
	Granularity     string         `json:"granularity"`
	From            string         `json:"from"`
	To              string         `json:"to"`
	Points          []RevenuePoint `json:"points"`
	CheckoutRevenue float64        `json:"checkoutRevenue"`
	Collected       float64        `json:"collected"`
}

type Service struct {
	repo  Repository
	cache cache.Cache
	ttl   time.Duration
	loc   *time.Location
	log   *zap.Logger
	now   func() time.Time
}

func NewService(repo Repository, c cache.Cache, ttl time.Duration, loc *time.Location, log *zap.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, cache: c, ttl: ttl, loc: loc, log: logger.OrNop(log), now: time.Now}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	today := s.now().In(s.loc)
	key := "dashboard:stats:" + today.Format(domain.DateLayout)
	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*Stats, error) {
		return s.loadStats(ctx, today)
	})
}

func (s *Service) loadStats(ctx context.Context, now time.Time) (*Stats, error) {
	st := &Stats{GeneratedAt: now}

	rooms, err := s.repo.RoomStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	st.Rooms.ByStatus = toMap(rooms)
	for _, n := range st.Rooms.ByStatus {
		st.Rooms.Total += n
	}
	if st.Rooms.Total > 0 {
		occupied := float64(st.Rooms.ByStatus[string(domain.RoomOccupied)])
		st.Rooms.OccupancyRate = round2(occupied / float64(st.Rooms.Total) * 100)
	}

	bookings, err := s.repo.BookingStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	st.Bookings = toMap(bookings)

	date := now.Format(domain.DateLayout)
	st.Today.Date = date
	if st.Today.ExpectedCheckIns, err = s.repo.ExpectedCheckIns(ctx, date); err != nil {
		return nil, err
	}
	if st.Today.ExpectedCheckOuts, err = s.repo.ExpectedCheckOuts(ctx, date); err != nil {
		return nil, err
	}

	dayStart := startOfDay(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	entries, err := s.repo.CheckoutRevenue(ctx, monthStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		st.Revenue.ThisMonth += e.Amount
		if !e.At.Before(dayStart) {
			st.Revenue.Today += e.Amount
		}
	}

	if st.OutstandingBalance, err = s.repo.OutstandingBalance(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

// Revenue buckets checkout revenue and invoice collections per day or month.
// Without bounds it covers the last 30 days or the last 12 months.
func (s *Service) Revenue(ctx context.Context, q RevenueQuery) (*RevenueReport, error) {
	if q.Granularity == "" {
		q.Granularity = GranularityDay
	}
	if q.Granularity != GranularityDay && q.Granularity != GranularityMonth {
		return nil, ErrInvalidGranularity
	}

	from, to, err := s.bounds(q)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("dashboard:revenue:%s:%s:%s", q.Granularity, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	return cache.GetOrLoad(ctx, s.cache, key, s.ttl, func(ctx context.Context) (*RevenueReport, error) {
		return s.loadRevenue(ctx, q.Granularity, from, to)
	})
}

// bounds returns the first day and the last day (inclusive) of the report.
func (s *Service) bounds(q RevenueQuery) (time.Time, time.Time, error) {
	today := startOfDay(s.now().In(s.loc))

	to := today
	if q.To != "" {
		t, err := time.ParseInLocation(domain.DateLayout, q.To, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange.With("invalid to: expected YYYY-MM-DD")
		}
		to = t
	}

	var from time.Time
	switch {
	case q.From != "":
		t, err := time.ParseInLocation(domain.DateLayout, q.From, s.loc)
		if err != nil {
			return time.Time{}, time.Time{}, ErrInvalidRange.With("invalid from: expected YYYY-MM-DD")
		}
		from = t
	case q.Granularity == GranularityMonth:
		from = time.Date(to.Year(), to.Month()-11, 1, 0, 0, 0, 0, s.loc)
	default:
		from = to.AddDate(0, 0, -29)
	}

	if q.Granularity == GranularityMonth {
		from = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, s.loc)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidRange.With("from must not be after to")
	}

	if n := len(periods(q.Granularity, from, to)); (q.Granularity == GranularityDay && n > maxDayBuckets) ||
		(q.Granularity == GranularityMonth && n > maxMonthBuckets) {
		return time.Time{}, time.Time{}, ErrInvalidRange.With("range too large for %s granularity", q.Granularity)
	}
	return from, to, nil
}

func (s *Service) loadRevenue(ctx context.Context, granularity string, from, to time.Time) (*RevenueReport, error) {
	end := to.AddDate(0, 0, 1)

	checkouts, err := s.repo.CheckoutRevenue(ctx, from, end)
	if err != nil {
		return nil, err
	}
	payments, err := s.repo.InvoicePayments(ctx, from, end)
	if err != nil {
		return nil, err
	}

	labels := periods(granularity, from, to)
	points := make([]RevenuePoint, len(labels))
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		points[i].Period = l
		index[l] = i
	}

	report := &RevenueReport{
		Granularity: granularity,
		From:        from.Format(domain.DateLayout),
		To:          to.Format(domain.DateLayout),
	}
	for _, e := range checkouts {
		if i, ok := index[periodOf(granularity, e.At.In(s.loc))]; ok {
			points[i].CheckoutRevenue += e.Amount
			report.CheckoutRevenue += e.Amount
		}
	}
	for _, e := range payments {
		if i, ok := index[periodOf(granularity, e.At.In(s.loc))]; ok {
			points[i].Collected += e.Amount
			report.Collected += e.Amount
		}
	}
	report.Points = points
	return report, nil
}

func periods(granularity string, from, to time.Time) []string {
	var out []string
	if granularity == GranularityMonth {
		for t := from; !t.After(to); t = t.AddDate(0, 1, 0) {
			out = append(out, periodOf(granularity, t))
		}
		return out
	}
	for t := from; !t.After(to); t = t.AddDate(0, 0, 1) {
		out = append(out, periodOf(granularity, t))
	}
	return out
}

func periodOf(granularity string, t time.Time) string {
	if granularity == GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format(domain.DateLayout)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toMap(rows []repository.StatusCount) map[string]int64 {
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] += r.Count
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
