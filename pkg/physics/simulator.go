package physics

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

const (
	DefaultTimeSlice = 0.1 // seconds
	DefaultMaxSteps  = 10_000_000
)

// FallState is the simulator's working state between steps.
type FallState struct {
	AltitudeM float64
	SpeedMS   float64
	ElapsedS  float64
}

// Observer is called with the state after every simulated step.
type Observer func(FallState)

// ImpactPredictor reports how long an object released from rest at the given
// height takes to reach the ground.
type ImpactPredictor interface {
	TimeToImpact(altitudeMeters float64) (float64, error)
}

// Simulator steps a falling body through fixed time slices. Speed ramps up
// linearly by g·slice·dragScalar per step and is clamped at terminal velocity.
type Simulator struct {
	c         Constants
	timeSlice float64
	maxSteps  int
	observer  Observer
}

type SimulatorOption func(*Simulator)

func WithTimeSlice(seconds float64) SimulatorOption {
	return func(s *Simulator) { s.timeSlice = seconds }
}

func WithMaxSteps(n int) SimulatorOption {
	return func(s *Simulator) { s.maxSteps = n }
}

func WithObserver(o Observer) SimulatorOption {
	return func(s *Simulator) { s.observer = o }
}

// NewSimulator creates a simulator for the given constants
func NewSimulator(c Constants, opts ...SimulatorOption) (*Simulator, error) {
	s := &Simulator{
		c:         c,
		timeSlice: DefaultTimeSlice,
		maxSteps:  DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// TimeSlice returns the integration step in seconds.
func (s *Simulator) TimeSlice() float64 {
	return s.timeSlice
}

func (s *Simulator) validate() error {
	const op = "impact simulator"
	switch {
	case !(s.c.Gravity > 0):
		return configError(op, "gravity must be positive, got %v", s.c.Gravity)
	case !(s.c.TerminalVelocity > 0):
		return configError(op, "terminal velocity must be positive, got %v", s.c.TerminalVelocity)
	case !(s.c.DragScalar > 0):
		return configError(op, "drag scalar must be positive, got %v", s.c.DragScalar)
	case !(s.timeSlice > 0) || math.IsInf(s.timeSlice, 0):
		return configError(op, "time slice must be positive, got %v", s.timeSlice)
	case s.maxSteps <= 0:
		return configError(op, "max steps must be positive, got %d", s.maxSteps)
	}
	return nil
}

// TimeToImpact returns the elapsed time at the end of the step in which the
// altitude first reaches zero or below. The overshoot inside that step is not
// corrected, so the result is always a whole number of slices and dropping
// from the ground takes one slice.
func (s *Simulator) TimeToImpact(altitudeMeters float64) (float64, error) {
	if err := s.validate(); err != nil {
		return 0, err
	}
	if math.IsNaN(altitudeMeters) || math.IsInf(altitudeMeters, 0) {
		return 0, domainError("impact simulator", "altitude must be finite, got %v", altitudeMeters)
	}

	accel := s.c.Gravity * s.timeSlice * s.c.DragScalar
	st := FallState{AltitudeM: altitudeMeters}
	for step := 0; step < s.maxSteps; step++ {
		st.SpeedMS = clamp(st.SpeedMS+accel, 0, s.c.TerminalVelocity)
		st.AltitudeM -= st.SpeedMS * s.timeSlice
		st.ElapsedS += s.timeSlice
		if s.observer != nil {
			s.observer(st)
		}
		if st.AltitudeM <= 0 {
			return st.ElapsedS, nil
		}
	}
	return 0, &Error{
		Kind: ErrIterationLimit,
		Op:   "impact simulator",
		Msg:  fmt.Sprintf("%d steps from %v m left %v m to fall", s.maxSteps, altitudeMeters, st.AltitudeM),
	}
}

func clamp[T constraints.Float](x, low, high T) T {
	if x < low {
		return low
	}
	if x > high {
		return high
	}
	return x
}
