// Package geo provides great-circle geodesy on a spherical earth and a
// spatial catalog of named targets.
package geo

import (
	"math"

	"github.com/1F47E/go-bombsight/pkg/models"
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func degrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// Bearing returns the initial great-circle bearing in degrees from `from`
// toward `to`, clockwise from true north and normalized into [0, 360).
// Identical points give 0; that value carries no direction.
func Bearing(from, to models.GeoPoint) float64 {
	lat1, lat2 := radians(from.Lat), radians(to.Lat)
	dLon := radians(to.Lon - from.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(degrees(math.Atan2(y, x))+360, 360)
}

// Distance returns the haversine great-circle distance between two points in
// the same unit as earthRadius.
func Distance(from, to models.GeoPoint, earthRadius float64) float64 {
	lat1, lon1 := radians(from.Lat), radians(from.Lon)
	lat2, lon2 := radians(to.Lat), radians(to.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Asin(math.Sqrt(a))
	return earthRadius * c
}
