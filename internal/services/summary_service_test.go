package services

import (
	"context"
	"testing"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

func seedJanuary(t *testing.T, trips *TripService, expenses *ExpenseService) {
	t.Helper()
	ctx := context.Background()

	trip := validTrip() // 2025-01-15, fare 25.50, tip 5.00, 14 km
	if _, err := trips.Create(ctx, trip); err != nil {
		t.Fatalf("failed to seed trip: %v", err)
	}
	expense := validExpense() // 2025-01-15, 45.80 fuel
	if _, err := expenses.Create(ctx, expense); err != nil {
		t.Fatalf("failed to seed expense: %v", err)
	}
}

func TestSummaryService_Daily(t *testing.T) {
	repo, logger := testStorage(t)
	trips := NewTripService(repo, nil, logger)
	expenses := NewExpenseService(repo, nil, logger)
	summaries := NewSummaryService(repo, logger, time.Minute, nil)
	seedJanuary(t, trips, expenses)

	got, err := summaries.Daily(context.Background(), core.NewDate(2025, 1, 15))
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if got.TotalIncome.Cents != 3050 {
		t.Errorf("expected income 3050, got %d", got.TotalIncome.Cents)
	}
	if got.TotalExpenses.Cents != 4580 {
		t.Errorf("expected expenses 4580, got %d", got.TotalExpenses.Cents)
	}
	if got.NetProfit.Cents != -1530 {
		t.Errorf("expected net -1530, got %d", got.NetProfit.Cents)
	}
	if got.TripCount != 1 {
		t.Errorf("expected 1 trip, got %d", got.TripCount)
	}
}

func TestSummaryService_WeeklyAndMonthly(t *testing.T) {
	repo, logger := testStorage(t)
	trips := NewTripService(repo, nil, logger)
	expenses := NewExpenseService(repo, nil, logger)
	summaries := NewSummaryService(repo, logger, time.Minute, nil)
	seedJanuary(t, trips, expenses)
	ctx := context.Background()

	weekly, err := summaries.Weekly(ctx, core.NewDate(2025, 1, 15))
	if err != nil {
		t.Fatalf("Weekly failed: %v", err)
	}
	if weekly.WeekStart.String() != "2025-01-12" || weekly.WeekEnd.String() != "2025-01-18" {
		t.Errorf("unexpected week range %s..%s", weekly.WeekStart, weekly.WeekEnd)
	}
	if weekly.TotalIncome.Cents != 3050 {
		t.Errorf("expected weekly income 3050, got %d", weekly.TotalIncome.Cents)
	}

	monthly, err := summaries.Monthly(ctx, core.NewDate(2025, 1, 15))
	if err != nil {
		t.Fatalf("Monthly failed: %v", err)
	}
	if monthly.Month != "January" || monthly.Year != 2025 {
		t.Errorf("unexpected month %s %d", monthly.Month, monthly.Year)
	}
	if len(monthly.Weeks) != 5 {
		t.Errorf("expected 5 weeks in January 2025, got %d", len(monthly.Weeks))
	}
	if monthly.TotalIncome.Cents != 3050 {
		t.Errorf("expected monthly income 3050, got %d", monthly.TotalIncome.Cents)
	}
}

func TestSummaryService_CacheInvalidation(t *testing.T) {
	repo, logger := testStorage(t)
	trips := NewTripService(repo, nil, logger)
	summaries := NewSummaryService(repo, logger, time.Minute, nil)
	ctx := context.Background()
	day := core.NewDate(2025, 1, 15)

	before, err := summaries.Daily(ctx, day)
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if before.TripCount != 0 {
		t.Fatalf("expected empty day, got %d trips", before.TripCount)
	}

	if _, err := trips.Create(ctx, validTrip()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Without invalidation the cached zero-summary is still served.
	cached, err := summaries.Daily(ctx, day)
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if cached.TripCount != 0 {
		t.Fatalf("expected cached summary before invalidation, got %d trips", cached.TripCount)
	}

	summaries.Invalidate()
	fresh, err := summaries.Daily(ctx, day)
	if err != nil {
		t.Fatalf("Daily failed: %v", err)
	}
	if fresh.TripCount != 1 {
		t.Errorf("expected fresh summary after invalidation, got %d trips", fresh.TripCount)
	}
}

func TestSummaryService_Breakdowns(t *testing.T) {
	repo, logger := testStorage(t)
	trips := NewTripService(repo, nil, logger)
	expenses := NewExpenseService(repo, nil, logger)
	summaries := NewSummaryService(repo, logger, time.Minute, nil)
	seedJanuary(t, trips, expenses)
	ctx := context.Background()
	start, end := core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31)

	categories, err := summaries.Categories(ctx, start, end)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != len(core.ExpenseCategories) {
		t.Fatalf("expected %d category buckets, got %d", len(core.ExpenseCategories), len(categories))
	}
	if categories[0].Category != core.Fuel || categories[0].Amount.Cents != 4580 {
		t.Errorf("expected fuel 4580 first, got %+v", categories[0])
	}

	methods, err := summaries.PaymentMethods(ctx, start, end)
	if err != nil {
		t.Fatalf("PaymentMethods failed: %v", err)
	}
	if methods[0].Method != core.Card || methods[0].TripCount != 1 {
		t.Errorf("expected card with 1 trip first, got %+v", methods[0])
	}

	hours, err := summaries.Hours(ctx, start, end)
	if err != nil {
		t.Fatalf("Hours failed: %v", err)
	}
	if len(hours) != 24 || hours[0].Hour != 8 || hours[0].TripCount != 1 {
		t.Errorf("expected 24 buckets with hour 8 first, got %d buckets starting %+v", len(hours), hours[0])
	}

	weekdays, err := summaries.Weekdays(ctx, start, end)
	if err != nil {
		t.Fatalf("Weekdays failed: %v", err)
	}
	// 2025-01-15 is a Wednesday, the only day with a trip.
	if len(weekdays) != 7 || weekdays[0].Day != "Wednesday" || weekdays[0].TripCount != 1 {
		t.Errorf("expected 7 buckets with Wednesday first, got %+v", weekdays)
	}
}

func TestSummaryService_Fuel(t *testing.T) {
	repo, logger := testStorage(t)
	trips := NewTripService(repo, nil, logger)
	expenses := NewExpenseService(repo, nil, logger)
	summaries := NewSummaryService(repo, logger, time.Minute, nil)
	ctx := context.Background()

	trip := validTrip()
	trip.DistanceKm = 100
	if _, err := trips.Create(ctx, trip); err != nil {
		t.Fatalf("Create trip failed: %v", err)
	}
	expense := validExpense()
	expense.Amount = core.Money{Cents: 1600}
	expense.FuelVolumeL = 8
	if _, err := expenses.Create(ctx, expense); err != nil {
		t.Fatalf("Create expense failed: %v", err)
	}

	report, err := summaries.Fuel(ctx, core.NewDate(2025, 1, 1), core.NewDate(2025, 1, 31))
	if err != nil {
		t.Fatalf("Fuel failed: %v", err)
	}
	if report.Efficiency != 8.00 {
		t.Errorf("expected 8.00 L/100km, got %v", report.Efficiency)
	}
	if report.CostPerDistance != 0.16 {
		t.Errorf("expected 0.16 per km, got %v", report.CostPerDistance)
	}
	if report.DistanceUnit != core.Kilometers || report.VolumeUnit != core.Liters {
		t.Errorf("expected default units, got %s/%s", report.DistanceUnit, report.VolumeUnit)
	}
}
