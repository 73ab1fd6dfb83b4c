package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	Cash PaymentMethod = "cash"
	Card PaymentMethod = "card"
	App  PaymentMethod = "app"
)

const (
	Fuel        ExpenseCategory = "fuel"
	Maintenance ExpenseCategory = "maintenance"
	Insurance   ExpenseCategory = "insurance"
	License     ExpenseCategory = "license"
	Cleaning    ExpenseCategory = "cleaning"
	Parking     ExpenseCategory = "parking"
	Tolls       ExpenseCategory = "tolls"
	Food        ExpenseCategory = "food"
	Other       ExpenseCategory = "other"
)

type (
	PaymentMethod   string
	ExpenseCategory string

	Money struct {
		Cents int64
	}

	// Trip is a single fare-earning drive. Distance is stored in
	// kilometers, the canonical unit; display conversion happens at
	// the edges.
	Trip struct {
		ID            int64
		Date          Date
		StartTime     string // HH:MM
		EndTime       string // HH:MM
		Fare          Money
		Tip           Money
		DistanceKm    float64
		PaymentMethod PaymentMethod
		Notes         string
	}

	// Expense is a single outlay. FuelVolumeL is only meaningful for
	// the fuel category and is stored in liters.
	Expense struct {
		ID          int64
		Date        Date
		Amount      Money
		Category    ExpenseCategory
		Description string
		ReceiptRef  string
		FuelVolumeL float64
	}
)

// PaymentMethods lists the fixed set of methods, in canonical order.
var PaymentMethods = []PaymentMethod{Cash, Card, App}

// ExpenseCategories lists the fixed set of categories, in canonical order.
var ExpenseCategories = []ExpenseCategory{
	Fuel, Maintenance, Insurance, License, Cleaning, Parking, Tolls, Food, Other,
}

var (
	ErrInvalidTime          = errors.New("invalid time, expected HH:MM")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidDistance      = errors.New("invalid distance")
	ErrInvalidVolume        = errors.New("invalid fuel volume")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownCategory      = errors.New("unknown expense category")
	ErrEmptyDescription     = errors.New("empty description")
	ErrTextTooLong          = errors.New("text too long")
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case Cash, Card, App:
		return true
	}
	return false
}

func (c ExpenseCategory) Valid() bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Total returns fare plus tip.
func (t Trip) Total() Money {
	return t.Fare.Add(t.Tip)
}

// StartHour returns the hour component of StartTime, or -1 when the
// time is not a well-formed HH:MM string.
func (t Trip) StartHour() int {
	hh, _, ok := strings.Cut(t.StartTime, ":")
	if !ok {
		return -1
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return -1
	}
	return h
}

func (t Trip) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	// End before start is allowed: night shifts cross midnight. Only
	// the HH:MM shape is checked.
	if !validClockTime(t.StartTime) || !validClockTime(t.EndTime) {
		return ErrInvalidTime
	}
	if err := t.Fare.Validate(); err != nil {
		return err
	}
	if err := t.Tip.Validate(); err != nil {
		return err
	}
	if t.DistanceKm < 0 {
		return ErrInvalidDistance
	}
	if !t.PaymentMethod.Valid() {
		return ErrUnknownPaymentMethod
	}
	if len(t.Notes) > 500 {
		return fmt.Errorf("notes over 500 characters: %w", ErrTextTooLong)
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return fmt.Errorf("description over 200 characters: %w", ErrTextTooLong)
	}
	if e.FuelVolumeL < 0 {
		return ErrInvalidVolume
	}
	if e.FuelVolumeL > 0 && e.Category != Fuel {
		return ErrInvalidVolume
	}
	return nil
}

func validClockTime(s string) bool {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return false
	}
	return true
}
