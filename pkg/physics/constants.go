// Package physics models a single body falling through air. It has two
// independent drag models: a closed-form free fall converging on terminal
// velocity, and a stepped simulator with a linear speed ramp clamped at
// terminal velocity. They are only compared against each other, neither is
// authoritative.
package physics

import "math"

// Constants holds the physical configuration for one scenario. It is passed by
// value so concurrent scenarios never share state.
type Constants struct {
	TerminalVelocity float64 `yaml:"terminal_velocity"`  // m/s
	Gravity          float64 `yaml:"gravity"`            // m/s^2
	DragScalar       float64 `yaml:"drag_scalar"`        // simulator ramp damping
	EarthRadiusMiles float64 `yaml:"earth_radius_miles"` // statute miles
}

// DefaultConstants returns the reference configuration.
func DefaultConstants() Constants {
	return Constants{
		TerminalVelocity: 30,
		Gravity:          9.80665,
		DragScalar:       0.7,
		EarthRadiusMiles: 3958.8,
	}
}

// Validate fails with ErrConfiguration when any value would break the
// simulator's termination or the geodesy math.
func (c Constants) Validate() error {
	check := func(name string, v float64) error {
		if !(v > 0) || math.IsInf(v, 0) {
			return configError("validate constants", "%s must be positive and finite, got %v", name, v)
		}
		return nil
	}
	if err := check("terminal velocity", c.TerminalVelocity); err != nil {
		return err
	}
	if err := check("gravity", c.Gravity); err != nil {
		return err
	}
	if err := check("drag scalar", c.DragScalar); err != nil {
		return err
	}
	return check("earth radius", c.EarthRadiusMiles)
}
