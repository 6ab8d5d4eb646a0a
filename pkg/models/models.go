package models

// GeoPoint is a geographic position in decimal degrees. Latitude comes first.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Target is a named point that can be planned against
type Target struct {
	ID       string   `json:"id" yaml:"id"`
	Location GeoPoint `json:"location" yaml:"location"`
}

// BoundingBox is a latitude/longitude search window. It never crosses the
// antimeridian: BottomLeft.Lon <= TopRight.Lon.
type BoundingBox struct {
	BottomLeft GeoPoint
	TopRight   GeoPoint
}

// DropSolution is the result of planning a single release over a target.
type DropSolution struct {
	BearingDeg     float64 `json:"bearing_deg"`
	DistanceMiles  float64 `json:"distance_miles"`
	DistanceMeters float64 `json:"distance_meters"`
	GroundSpeedMS  float64 `json:"ground_speed_ms"`

	// TimeToTarget is how long the current ground speed needs to cover the distance.
	TimeToTarget float64 `json:"time_to_target_s"`
	// TimeToImpact is the simulated fall time from the current altitude.
	TimeToImpact float64 `json:"time_to_impact_s"`
	// TimeUntilDrop is negative when the release point has already been passed.
	TimeUntilDrop float64 `json:"time_until_drop_s"`

	IdealAltitudeMeters float64 `json:"ideal_altitude_m"`
	IdealAltitudeFeet   float64 `json:"ideal_altitude_ft"`
	// IdealTimeToImpact is the simulated fall time from the ideal altitude,
	// kept for comparison against TimeToTarget.
	IdealTimeToImpact float64 `json:"ideal_time_to_impact_s"`
}
