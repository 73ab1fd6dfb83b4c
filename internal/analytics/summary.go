package analytics

import (
	"github.com/MarkoB19/TaxiTracker/internal/core"
)

type (
	// DailySummary aggregates one calendar day. A day with no records
	// still yields a summary, with zero totals.
	DailySummary struct {
		Date          core.Date
		TotalIncome   core.Money
		TotalExpenses core.Money
		NetProfit     core.Money
		TripCount     int
		DistanceKm    float64
	}

	// WeeklySummary covers a Sunday-through-Saturday week. Totals are
	// the exact sums of the seven daily summaries.
	WeeklySummary struct {
		WeekStart     core.Date
		WeekEnd       core.Date
		TotalIncome   core.Money
		TotalExpenses core.Money
		NetProfit     core.Money
		TripCount     int
		DistanceKm    float64
		Days          []DailySummary
	}

	// MonthlySummary covers a calendar month, with one WeeklySummary
	// per overlapping week. Boundary weeks only count the days that
	// fall inside the month, so the weekly rows always add up to the
	// monthly totals.
	MonthlySummary struct {
		Month         string
		Year          int
		TotalIncome   core.Money
		TotalExpenses core.Money
		NetProfit     core.Money
		TripCount     int
		DistanceKm    float64
		Weeks         []WeeklySummary
	}
)

// BuildDailySummary aggregates the records dated on day. Records on
// other days are ignored.
func BuildDailySummary(day core.Date, trips []core.Trip, expenses []core.Expense) DailySummary {
	dayTrips := tripsOn(trips, day)
	dayExpenses := expensesOn(expenses, day)

	income := TotalIncome(dayTrips)
	spent := TotalExpenses(dayExpenses)
	return DailySummary{
		Date:          day,
		TotalIncome:   income,
		TotalExpenses: spent,
		NetProfit:     income.Sub(spent),
		TripCount:     len(dayTrips),
		DistanceKm:    TotalDistance(dayTrips),
	}
}

// BuildWeeklySummary aggregates the week containing day. It always
// produces exactly seven daily summaries, Sunday first, and its totals
// are the sums of those days.
func BuildWeeklySummary(day core.Date, trips []core.Trip, expenses []core.Expense) WeeklySummary {
	start, end := core.WeekRange(day)

	week := WeeklySummary{WeekStart: start, WeekEnd: end}
	for _, d := range core.DatesBetween(start, end) {
		daily := BuildDailySummary(d, trips, expenses)
		week.Days = append(week.Days, daily)
		week.TotalIncome = week.TotalIncome.Add(daily.TotalIncome)
		week.TotalExpenses = week.TotalExpenses.Add(daily.TotalExpenses)
		week.TripCount += daily.TripCount
		week.DistanceKm += daily.DistanceKm
	}
	week.NetProfit = week.TotalIncome.Sub(week.TotalExpenses)
	return week
}

// BuildMonthlySummary aggregates the calendar month containing day.
// Records are first narrowed to the month, so weeks that straddle a
// month boundary contribute only their in-month days here even when
// neighboring-month records exist.
func BuildMonthlySummary(day core.Date, trips []core.Trip, expenses []core.Expense) MonthlySummary {
	year, month := day.Year(), day.Month()
	monthTrips := tripsInMonth(trips, year, month)
	monthExpenses := expensesInMonth(expenses, year, month)

	income := TotalIncome(monthTrips)
	spent := TotalExpenses(monthExpenses)
	summary := MonthlySummary{
		Month:         day.MonthName(),
		Year:          year,
		TotalIncome:   income,
		TotalExpenses: spent,
		NetProfit:     income.Sub(spent),
		TripCount:     len(monthTrips),
		DistanceKm:    TotalDistance(monthTrips),
	}
	for _, start := range core.WeekStartsInMonth(day) {
		summary.Weeks = append(summary.Weeks,
			BuildWeeklySummary(start, monthTrips, monthExpenses))
	}
	return summary
}
