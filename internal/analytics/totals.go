// Package analytics derives summaries and breakdowns from trip and
// expense records. Everything here is pure: functions take record
// slices and return values, with no storage or clock dependencies, so
// the same inputs always produce the same report.
package analytics

import (
	"github.com/MarkoB19/TaxiTracker/internal/core"
)

// TotalIncome sums fare plus tip across all trips.
func TotalIncome(trips []core.Trip) core.Money {
	var total core.Money
	for _, t := range trips {
		total = total.Add(t.Total())
	}
	return total
}

// TotalExpenses sums expense amounts.
func TotalExpenses(expenses []core.Expense) core.Money {
	var total core.Money
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// TotalDistance sums trip distance in kilometers.
func TotalDistance(trips []core.Trip) float64 {
	var total float64
	for _, t := range trips {
		total += t.DistanceKm
	}
	return total
}

func tripsOn(trips []core.Trip, day core.Date) []core.Trip {
	var out []core.Trip
	for _, t := range trips {
		if t.Date.SameDay(day) {
			out = append(out, t)
		}
	}
	return out
}

func expensesOn(expenses []core.Expense, day core.Date) []core.Expense {
	var out []core.Expense
	for _, e := range expenses {
		if e.Date.SameDay(day) {
			out = append(out, e)
		}
	}
	return out
}

func tripsInMonth(trips []core.Trip, year, month int) []core.Trip {
	var out []core.Trip
	for _, t := range trips {
		if t.Date.InMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}

func expensesInMonth(expenses []core.Expense, year, month int) []core.Expense {
	var out []core.Expense
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			out = append(out, e)
		}
	}
	return out
}
