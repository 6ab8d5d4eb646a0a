// Package planner combines geodesy and the fall models into a drop solution:
// when, and from what altitude, to release over a target.
package planner

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/1F47E/go-bombsight/pkg/geo"
	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/1F47E/go-bombsight/pkg/physics"
	"github.com/1F47E/go-bombsight/pkg/units"
)

// Request describes one planning scenario in the units a pilot would use.
type Request struct {
	AltitudeFeet   float64         `json:"altitude_ft"`
	GroundSpeedMPH float64         `json:"ground_speed_mph"`
	Current        models.GeoPoint `json:"current"`
	Target         models.GeoPoint `json:"target"`
}

// Planner answers drop questions for a single set of physical constants.
type Planner struct {
	constants physics.Constants
	freeFall  physics.FreeFall
	impact    physics.ImpactPredictor
	logger    *slog.Logger
}

type Option func(*Planner)

func WithLogger(l *slog.Logger) Option {
	return func(p *Planner) { p.logger = l }
}

// New creates a planner. impact is normally a *physics.Simulator built from
// the same constants, optionally behind a physics.CachedSimulator.
func New(c physics.Constants, impact physics.ImpactPredictor, opts ...Option) (*Planner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if impact == nil {
		return nil, fmt.Errorf("planner needs an impact predictor")
	}
	p := &Planner{
		constants: c,
		freeFall:  physics.NewFreeFall(c),
		impact:    impact,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

func (p *Planner) FreeFall() physics.FreeFall {
	return p.freeFall
}

// TimeToDistance returns the seconds needed to cover meters at speed m/s.
func TimeToDistance(meters, speed float64) (float64, error) {
	if !(speed > 0) || math.IsInf(speed, 0) {
		return 0, physics.DomainError("time to target", "ground speed must be positive, got %v m/s", speed)
	}
	return meters / speed, nil
}

// Plan computes the full drop solution for req. It either succeeds completely
// or returns the first error.
func (p *Planner) Plan(req Request) (models.DropSolution, error) {
	altitudeM := units.MetersFromFeet(req.AltitudeFeet)
	groundSpeed := units.MetersPerSecondFromMPH(req.GroundSpeedMPH)

	sol := models.DropSolution{
		BearingDeg:    geo.Bearing(req.Current, req.Target),
		DistanceMiles: geo.Distance(req.Current, req.Target, p.constants.EarthRadiusMiles),
		GroundSpeedMS: groundSpeed,
	}
	sol.DistanceMeters = units.MetersFromMiles(sol.DistanceMiles)

	var err error
	if sol.TimeToTarget, err = TimeToDistance(sol.DistanceMeters, groundSpeed); err != nil {
		return models.DropSolution{}, err
	}
	if sol.TimeToImpact, err = p.impact.TimeToImpact(altitudeM); err != nil {
		return models.DropSolution{}, fmt.Errorf("time to impact from %v ft: %w", req.AltitudeFeet, err)
	}
	sol.TimeUntilDrop = sol.TimeToTarget - sol.TimeToImpact

	if sol.IdealAltitudeMeters, err = p.freeFall.AltitudeFallen(sol.TimeToTarget); err != nil {
		return models.DropSolution{}, fmt.Errorf("ideal altitude: %w", err)
	}
	sol.IdealAltitudeFeet = units.FeetFromMeters(sol.IdealAltitudeMeters)
	if sol.IdealTimeToImpact, err = p.impact.TimeToImpact(sol.IdealAltitudeMeters); err != nil {
		return models.DropSolution{}, fmt.Errorf("time to impact from ideal altitude: %w", err)
	}

	p.logger.Debug("planned drop",
		"bearing", sol.BearingDeg,
		"distance_miles", sol.DistanceMiles,
		"time_to_target", sol.TimeToTarget,
		"time_until_drop", sol.TimeUntilDrop)
	if sol.TimeUntilDrop < 0 {
		p.logger.Info("release point already passed", "late_by_s", -sol.TimeUntilDrop)
	}
	return sol, nil
}
