package analytics

import (
	"testing"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

func TestFuelEfficiencyMetric(t *testing.T) {
	trips := []core.Trip{
		makeTrip("2025-01-01", "09:00", 2550, 0, 60, core.Card),
		makeTrip("2025-01-02", "10:00", 1800, 0, 40, core.Cash),
	}
	expenses := []core.Expense{
		makeExpense("2025-01-01", 1600, core.Fuel, 8),
		makeExpense("2025-01-02", 800, core.Parking, 0), // not fuel, ignored
	}

	got := FuelEfficiency(trips, expenses, core.Settings{
		Currency:     core.EUR,
		DistanceUnit: core.Kilometers,
		VolumeUnit:   core.Liters,
	})

	// 8 L over 100 km is 8.00 L/100km.
	if got.Efficiency != 8.00 {
		t.Fatalf("efficiency expected 8.00, got %v", got.Efficiency)
	}
	// 16.00 of fuel over 100 km.
	if got.CostPerDistance != 0.16 {
		t.Fatalf("cost expected 0.16, got %v", got.CostPerDistance)
	}
	if got.DistanceUnit != core.Kilometers || got.VolumeUnit != core.Liters {
		t.Fatalf("units not carried: %+v", got)
	}
}

func TestFuelEfficiencyImperial(t *testing.T) {
	trips := []core.Trip{
		makeTrip("2025-01-01", "09:00", 2550, 0, 160.934, core.Card), // 100 mi
	}
	expenses := []core.Expense{
		makeExpense("2025-01-01", 1600, core.Fuel, 18.92705), // 5 gal
	}

	got := FuelEfficiency(trips, expenses, core.Settings{
		Currency:     core.USD,
		DistanceUnit: core.Miles,
		VolumeUnit:   core.Gallons,
	})

	// 100 miles on 5 gallons is 20 MPG.
	if got.Efficiency != 20.00 {
		t.Fatalf("efficiency expected 20.00, got %v", got.Efficiency)
	}
	if got.CostPerDistance != 0.16 {
		t.Fatalf("cost expected 0.16, got %v", got.CostPerDistance)
	}
}

func TestFuelEfficiencyZeroSentinels(t *testing.T) {
	settings := core.DefaultSettings()

	// Fuel bought but nothing driven.
	got := FuelEfficiency(nil, []core.Expense{makeExpense("2025-01-01", 1600, core.Fuel, 8)}, settings)
	if got.Efficiency != 0 || got.CostPerDistance != 0 {
		t.Fatalf("expected zeros without distance, got %+v", got)
	}

	// Distance driven but no fuel volume recorded.
	got = FuelEfficiency([]core.Trip{makeTrip("2025-01-01", "09:00", 1000, 0, 50, core.Cash)}, nil, settings)
	if got.Efficiency != 0 || got.CostPerDistance != 0 {
		t.Fatalf("expected zeros without volume, got %+v", got)
	}
}
