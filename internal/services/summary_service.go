package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/analytics"
	"github.com/MarkoB19/TaxiTracker/internal/cache"
	"github.com/MarkoB19/TaxiTracker/internal/core"
	"github.com/MarkoB19/TaxiTracker/internal/log"
	"github.com/MarkoB19/TaxiTracker/internal/storage"
)

const summaryCacheSize = 64

// SummaryService computes summaries and breakdowns from stored
// records. Results are cached with a short TTL; any write to trips or
// expenses purges the caches via Invalidate.
type SummaryService struct {
	storage *storage.Repository
	logger  *log.Logger

	daily   *cache.LRUCache[analytics.DailySummary]
	weekly  *cache.LRUCache[analytics.WeeklySummary]
	monthly *cache.LRUCache[analytics.MonthlySummary]
}

func NewSummaryService(store *storage.Repository, logger *log.Logger, ttl time.Duration, manager *cache.Manager) *SummaryService {
	s := &SummaryService{
		storage: store,
		logger:  logger.WithComponent(log.ComponentCache),
		daily:   cache.NewLRUCache[analytics.DailySummary](summaryCacheSize, ttl),
		weekly:  cache.NewLRUCache[analytics.WeeklySummary](summaryCacheSize, ttl),
		monthly: cache.NewLRUCache[analytics.MonthlySummary](summaryCacheSize, ttl),
	}
	if manager != nil {
		manager.Register(s.daily)
		manager.Register(s.weekly)
		manager.Register(s.monthly)
	}
	return s
}

// Invalidate drops all cached summaries. Called after any trip or
// expense write.
func (s *SummaryService) Invalidate() {
	s.daily.Purge()
	s.weekly.Purge()
	s.monthly.Purge()
}

// Daily returns the summary for a single day.
func (s *SummaryService) Daily(ctx context.Context, day core.Date) (analytics.DailySummary, error) {
	key := day.String()
	if cached, ok := s.daily.Get(key); ok {
		return cached, nil
	}

	trips, expenses, err := s.records(ctx, day, day)
	if err != nil {
		return analytics.DailySummary{}, err
	}

	summary := analytics.BuildDailySummary(day, trips, expenses)
	s.daily.Set(key, summary)
	return summary, nil
}

// Weekly returns the summary for the Sunday-to-Saturday week
// containing day.
func (s *SummaryService) Weekly(ctx context.Context, day core.Date) (analytics.WeeklySummary, error) {
	start, end := core.WeekRange(day)
	key := start.String()
	if cached, ok := s.weekly.Get(key); ok {
		return cached, nil
	}

	trips, expenses, err := s.records(ctx, start, end)
	if err != nil {
		return analytics.WeeklySummary{}, err
	}

	summary := analytics.BuildWeeklySummary(day, trips, expenses)
	s.weekly.Set(key, summary)
	return summary, nil
}

// Monthly returns the summary for the calendar month containing day.
func (s *SummaryService) Monthly(ctx context.Context, day core.Date) (analytics.MonthlySummary, error) {
	key := fmt.Sprintf("%04d-%02d", day.Year(), day.Month())
	if cached, ok := s.monthly.Get(key); ok {
		return cached, nil
	}

	first := core.NewDate(day.Year(), day.Month(), 1)
	last := core.NewDate(day.Year(), day.Month()+1, 1).AddDays(-1)
	trips, expenses, err := s.records(ctx, first, last)
	if err != nil {
		return analytics.MonthlySummary{}, err
	}

	summary := analytics.BuildMonthlySummary(day, trips, expenses)
	s.monthly.Set(key, summary)
	return summary, nil
}

// Categories breaks down expenses by category over [start, end].
func (s *SummaryService) Categories(ctx context.Context, start, end core.Date) ([]analytics.CategoryShare, error) {
	expenses, err := s.storage.ListExpensesByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryBreakdown(expenses), nil
}

// PaymentMethods breaks down trip income by payment method over
// [start, end].
func (s *SummaryService) PaymentMethods(ctx context.Context, start, end core.Date) ([]analytics.PaymentShare, error) {
	trips, err := s.storage.ListTripsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.PaymentBreakdown(trips), nil
}

// Hours reports trip activity by start hour over [start, end].
func (s *SummaryService) Hours(ctx context.Context, start, end core.Date) ([]analytics.HourActivity, error) {
	trips, err := s.storage.ListTripsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.HourlyActivity(trips), nil
}

// Weekdays reports trip activity by day of week over [start, end].
func (s *SummaryService) Weekdays(ctx context.Context, start, end core.Date) ([]analytics.WeekdayActivity, error) {
	trips, err := s.storage.ListTripsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return analytics.WeekdayBreakdown(trips), nil
}

// Fuel computes fuel efficiency over [start, end] in the user's
// preferred units.
func (s *SummaryService) Fuel(ctx context.Context, start, end core.Date) (analytics.FuelReport, error) {
	settings, err := s.storage.GetSettings(ctx)
	if err != nil {
		return analytics.FuelReport{}, fmt.Errorf("load settings: %w", err)
	}
	trips, expenses, err := s.records(ctx, start, end)
	if err != nil {
		return analytics.FuelReport{}, err
	}
	return analytics.FuelEfficiency(trips, expenses, settings), nil
}

func (s *SummaryService) records(ctx context.Context, start, end core.Date) ([]core.Trip, []core.Expense, error) {
	trips, err := s.storage.ListTripsByDateRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("load trips: %w", err)
	}
	expenses, err := s.storage.ListExpensesByDateRange(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("load expenses: %w", err)
	}
	return trips, expenses, nil
}
