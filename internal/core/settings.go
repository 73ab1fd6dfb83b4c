package core

import (
	"errors"
	"fmt"
)

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	AUD Currency = "AUD"
	CAD Currency = "CAD"
	CHF Currency = "CHF"
	JPY Currency = "JPY"
	CNY Currency = "CNY"
)

type (
	Currency string

	// Settings are the driver's display preferences. Records are always
	// stored in canonical units (km, liters, cents); settings only steer
	// how derived figures are presented.
	Settings struct {
		Currency     Currency
		DistanceUnit DistanceUnit
		VolumeUnit   VolumeUnit
	}
)

// Currencies lists the supported currency codes.
var Currencies = []Currency{USD, EUR, GBP, AUD, CAD, CHF, JPY, CNY}

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrUnknownUnit     = errors.New("unknown unit")
)

func (c Currency) Valid() bool {
	for _, known := range Currencies {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		Currency:     USD,
		DistanceUnit: Kilometers,
		VolumeUnit:   Liters,
	}
}

func (s Settings) Validate() error {
	if !s.Currency.Valid() {
		return ErrUnknownCurrency
	}
	if !s.DistanceUnit.Valid() {
		return fmt.Errorf("distance unit %q: %w", s.DistanceUnit, ErrUnknownUnit)
	}
	if !s.VolumeUnit.Valid() {
		return fmt.Errorf("volume unit %q: %w", s.VolumeUnit, ErrUnknownUnit)
	}
	return nil
}
