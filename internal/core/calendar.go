package core

import (
	"errors"
	"time"
)

// Date is a calendar day with no time-of-day component. All dates are
// handled in UTC to keep day arithmetic free of DST surprises.
type Date struct {
	time.Time
}

var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range components
// ("2025-02-30") are rejected rather than normalized.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return Date{Time: d.Time.AddDate(0, 0, n)}
}

// SameDay reports whether two dates name the same calendar day.
func (d Date) SameDay(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

// InMonth reports whether the date falls in the given calendar month.
func (d Date) InMonth(year, month int) bool {
	return d.Year() == year && d.Month() == month
}

// MonthName returns the English month name ("January").
func (d Date) MonthName() string {
	return d.Time.Month().String()
}

// WeekRange returns the Sunday-through-Saturday week containing d.
// Weeks start on Sunday: the range for 2025-01-15 (a Wednesday) is
// 2025-01-12 through 2025-01-18.
func WeekRange(d Date) (start, end Date) {
	start = d.AddDays(-int(d.Weekday()))
	end = start.AddDays(6)
	return start, end
}

// DatesBetween returns every day from start through end inclusive.
func DatesBetween(start, end Date) []Date {
	if end.Before(start.Time) {
		return nil
	}
	var days []Date
	for d := start; !d.After(end.Time); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// WeekStartsInMonth returns the Sunday start of every week that
// overlaps the month containing d, in order. The first start may fall
// in the previous month; the last week may spill into the next.
func WeekStartsInMonth(d Date) []Date {
	first := NewDate(d.Year(), d.Month(), 1)
	last := first.AddDate(0, 1, -1)
	start, _ := WeekRange(first)

	var starts []Date
	for !start.After(last) {
		starts = append(starts, start)
		start = start.AddDays(7)
	}
	return starts
}
