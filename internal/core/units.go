package core

const (
	Kilometers DistanceUnit = "km"
	Miles      DistanceUnit = "mi"

	Liters  VolumeUnit = "L"
	Gallons VolumeUnit = "gal"
)

// Conversion factors match the ones printed on the side of a fuel pump:
// they are approximations, applied once, without intermediate rounding.
const (
	kmToMi = 0.621371
	miToKm = 1.60934
	lToGal = 0.264172
	galToL = 3.78541
)

type (
	DistanceUnit string
	VolumeUnit   string
)

func (u DistanceUnit) Valid() bool {
	return u == Kilometers || u == Miles
}

func (u VolumeUnit) Valid() bool {
	return u == Liters || u == Gallons
}

// ConvertDistance converts v between kilometers and miles. Same-unit
// conversion returns v unchanged.
func ConvertDistance(v float64, from, to DistanceUnit) float64 {
	switch {
	case from == to:
		return v
	case from == Kilometers && to == Miles:
		return v * kmToMi
	case from == Miles && to == Kilometers:
		return v * miToKm
	}
	return v
}

// ConvertVolume converts v between liters and US gallons. Same-unit
// conversion returns v unchanged.
func ConvertVolume(v float64, from, to VolumeUnit) float64 {
	switch {
	case from == to:
		return v
	case from == Liters && to == Gallons:
		return v * lToGal
	case from == Gallons && to == Liters:
		return v * galToL
	}
	return v
}
