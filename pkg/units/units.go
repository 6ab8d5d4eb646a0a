// Package units converts between the imperial inputs the planner accepts and
// the metric units the physics runs in.
package units

const (
	FeetPerMeter          = 3.28084
	FeetPerMile           = 5280.0
	MetersPerSecondPerMPH = 0.44704
)

// MetersFromFeet converts feet to meters
func MetersFromFeet(feet float64) float64 {
	return feet / FeetPerMeter
}

// FeetFromMeters converts meters to feet
func FeetFromMeters(meters float64) float64 {
	return meters * FeetPerMeter
}

// FeetFromMiles converts statute miles to feet
func FeetFromMiles(miles float64) float64 {
	return miles * FeetPerMile
}

// MetersFromMiles goes through feet so results match the feet/meter factor above.
func MetersFromMiles(miles float64) float64 {
	return MetersFromFeet(FeetFromMiles(miles))
}

func MetersPerSecondFromMPH(mph float64) float64 {
	return mph * MetersPerSecondPerMPH
}
