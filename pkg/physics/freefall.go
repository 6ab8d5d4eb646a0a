package physics

import "math"

// Above this, cosh overflows long before the log would.
const coshSwitch = 20.0

// FreeFall is the closed-form fall model with drag building smoothly toward
// terminal velocity.
type FreeFall struct {
	c Constants
}

func NewFreeFall(c Constants) FreeFall {
	return FreeFall{c: c}
}

// AltitudeFallen returns the meters fallen from rest after t seconds:
//
//	(Vt²/g) · ln(cosh(g·t/Vt))
func (f FreeFall) AltitudeFallen(t float64) (float64, error) {
	if math.IsNaN(t) || t < 0 {
		return 0, domainError("altitude fallen", "time must be non-negative, got %v", t)
	}
	vt, g := f.c.TerminalVelocity, f.c.Gravity
	if !(vt > 0) || !(g > 0) {
		return 0, configError("altitude fallen", "gravity %v and terminal velocity %v must be positive", g, vt)
	}

	x := g * t / vt
	var lnCosh float64
	if x < coshSwitch {
		lnCosh = math.Log1p(math.Cosh(x) - 1)
	} else {
		lnCosh = x + math.Log1p(math.Exp(-2*x)) - math.Ln2
	}
	return (vt * vt / g) * lnCosh, nil
}

// FallTime returns the seconds needed to fall distance meters for an object
// of the given mass and drag coefficient k:
//
//	sqrt(m/(g·k)) · acosh(e^(d·k/m))
//
// The terminal velocity here is implied by mass and k, not taken from
// Constants.
func (f FreeFall) FallTime(distance, mass, k float64) (float64, error) {
	if !(mass > 0) {
		return 0, domainError("fall time", "mass must be positive, got %v", mass)
	}
	if !(k > 0) {
		return 0, domainError("fall time", "drag coefficient must be positive, got %v", k)
	}
	g := f.c.Gravity
	if !(g > 0) {
		return 0, configError("fall time", "gravity must be positive, got %v", g)
	}

	y := distance * k / mass
	var acosh float64
	if y < coshSwitch {
		arg := math.Exp(y)
		if math.IsNaN(arg) || arg < 1 {
			return 0, domainError("fall time", "acosh argument %v is below 1 (distance %v)", arg, distance)
		}
		acosh = math.Acosh(arg)
	} else {
		// acosh(e^y) = y + ln(1 + sqrt(1 - e^(-2y)))
		acosh = y + math.Log1p(math.Sqrt(1-math.Exp(-2*y)))
	}

	t := math.Sqrt(mass/(g*k)) * acosh
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0, domainError("fall time", "result is not finite for distance %v", distance)
	}
	return t, nil
}
