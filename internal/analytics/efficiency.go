package analytics

import (
	"math"

	"github.com/MarkoB19/TaxiTracker/internal/core"
)

// FuelReport relates driven distance to fuel bought, in the driver's
// preferred units. With kilometers the efficiency figure is L/100km;
// with miles it is MPG. CostPerDistance is fuel spend per distance
// unit. Both are rounded to two decimals.
type FuelReport struct {
	Efficiency      float64
	CostPerDistance float64
	DistanceUnit    core.DistanceUnit
	VolumeUnit      core.VolumeUnit
}

// FuelEfficiency computes the report from all trips and the fuel
// expenses among all expenses. When either total distance or total
// fuel volume is zero there is nothing to relate and the report is
// all zeros.
func FuelEfficiency(trips []core.Trip, expenses []core.Expense, settings core.Settings) FuelReport {
	report := FuelReport{
		DistanceUnit: settings.DistanceUnit,
		VolumeUnit:   settings.VolumeUnit,
	}

	distanceKm := TotalDistance(trips)
	var volumeL float64
	var fuelCost core.Money
	for _, e := range expenses {
		if e.Category != core.Fuel {
			continue
		}
		volumeL += e.FuelVolumeL
		fuelCost = fuelCost.Add(e.Amount)
	}
	if distanceKm == 0 || volumeL == 0 {
		return report
	}

	distance := core.ConvertDistance(distanceKm, core.Kilometers, settings.DistanceUnit)
	volume := core.ConvertVolume(volumeL, core.Liters, settings.VolumeUnit)

	// Kilometers report consumption (L/100km, lower is better); miles
	// report mileage (MPG, higher is better).
	if settings.DistanceUnit == core.Kilometers {
		report.Efficiency = round2(volume * 100 / distance)
	} else {
		report.Efficiency = round2(distance / volume)
	}
	report.CostPerDistance = round2(fuelCost.Amount() / distance)
	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
