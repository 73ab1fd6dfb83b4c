package analytics

import (
	"sort"
	"time"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

type (
	// CategoryShare is one row of the expense-category breakdown.
	// Percentage is of the total expense amount, 0 when nothing was
	// spent at all.
	CategoryShare struct {
		Category   core.ExpenseCategory
		Amount     core.Money
		Percentage float64
	}

	// PaymentShare is one row of the payment-method breakdown over trips.
	PaymentShare struct {
		Method     core.PaymentMethod
		Amount     core.Money
		TripCount  int
		Percentage float64
	}

	// HourActivity is one of 24 hourly buckets, keyed by the hour
	// component of the trip start time.
	HourActivity struct {
		Hour       int
		TripCount  int
		Income     core.Money
		Percentage float64
	}

	// WeekdayActivity is one of 7 weekday buckets, Sunday first.
	WeekdayActivity struct {
		Day        string
		DayIndex   int // 0 = Sunday
		TripCount  int
		Income     core.Money
		Percentage float64
	}
)

// CategoryBreakdown returns one row per known category, every bucket
// present even when empty, sorted by amount descending. Ties keep the
// canonical category order.
func CategoryBreakdown(expenses []core.Expense) []CategoryShare {
	byCategory := make(map[core.ExpenseCategory]core.Money, len(core.ExpenseCategories))
	var total core.Money
	for _, e := range expenses {
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
		total = total.Add(e.Amount)
	}

	rows := make([]CategoryShare, 0, len(core.ExpenseCategories))
	for _, c := range core.ExpenseCategories {
		amount := byCategory[c]
		rows = append(rows, CategoryShare{
			Category:   c,
			Amount:     amount,
			Percentage: share(amount.Cents, total.Cents),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.Cents > rows[j].Amount.Cents
	})
	return rows
}

// PaymentBreakdown returns one row per payment method, every bucket
// present, sorted by income descending.
func PaymentBreakdown(trips []core.Trip) []PaymentShare {
	type bucket struct {
		amount core.Money
		count  int
	}
	byMethod := make(map[core.PaymentMethod]bucket, len(core.PaymentMethods))
	var total core.Money
	for _, t := range trips {
		b := byMethod[t.PaymentMethod]
		b.amount = b.amount.Add(t.Total())
		b.count++
		byMethod[t.PaymentMethod] = b
		total = total.Add(t.Total())
	}

	rows := make([]PaymentShare, 0, len(core.PaymentMethods))
	for _, m := range core.PaymentMethods {
		b := byMethod[m]
		rows = append(rows, PaymentShare{
			Method:     m,
			Amount:     b.amount,
			TripCount:  b.count,
			Percentage: share(b.amount.Cents, total.Cents),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.Cents > rows[j].Amount.Cents
	})
	return rows
}

// HourlyActivity buckets trips by the hour of their start time into 24
// rows, sorted by trip count descending; ties keep hour order. Trips
// with a malformed start time are skipped, and Percentage is of the
// counted trips, not the raw input length.
func HourlyActivity(trips []core.Trip) []HourActivity {
	rows := make([]HourActivity, 24)
	for h := range rows {
		rows[h].Hour = h
	}
	counted := 0
	for _, t := range trips {
		h := t.StartHour()
		if h < 0 {
			continue
		}
		rows[h].TripCount++
		rows[h].Income = rows[h].Income.Add(t.Total())
		counted++
	}
	for h := range rows {
		rows[h].Percentage = share(int64(rows[h].TripCount), int64(counted))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TripCount > rows[j].TripCount
	})
	return rows
}

// WeekdayBreakdown buckets trips by weekday into 7 rows, sorted by
// trip count descending; ties keep Sunday-first order. Percentage is
// of the total trip count.
func WeekdayBreakdown(trips []core.Trip) []WeekdayActivity {
	rows := make([]WeekdayActivity, 7)
	for i := range rows {
		rows[i].Day = time.Weekday(i).String()
		rows[i].DayIndex = i
	}
	for _, t := range trips {
		i := int(t.Date.Weekday())
		rows[i].TripCount++
		rows[i].Income = rows[i].Income.Add(t.Total())
	}
	for i := range rows {
		rows[i].Percentage = share(int64(rows[i].TripCount), int64(len(trips)))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TripCount > rows[j].TripCount
	})
	return rows
}

// share returns part as a percentage of total, 0 when total is 0.
func share(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
