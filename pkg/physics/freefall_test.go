package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	flourSackMass = 0.22
	flourSackK    = 0.002
)

func TestAltitudeFallenAtZero(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())
	alt, err := ff.AltitudeFallen(0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, alt)
}

func TestAltitudeFallenMonotonic(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())

	prev := 0.0
	for ts := 0.0; ts <= 120; ts += 0.05 {
		alt, err := ff.AltitudeFallen(ts)
		require.NoError(t, err)
		if alt < prev {
			t.Fatalf("altitude decreased at t=%v: %v < %v", ts, alt, prev)
		}
		prev = alt
	}
}

func TestAltitudeFallenApproachesTerminalVelocity(t *testing.T) {
	c := DefaultConstants()
	ff := NewFreeFall(c)

	// Far past the transient the body falls at Vt, offset by (Vt²/g)·ln2.
	for _, ts := range []float64{1000, 10000, 1e6} {
		alt, err := ff.AltitudeFallen(ts)
		require.NoError(t, err)
		require.False(t, math.IsInf(alt, 0) || math.IsNaN(alt), "t=%v", ts)

		want := c.TerminalVelocity*ts - (c.TerminalVelocity*c.TerminalVelocity/c.Gravity)*math.Ln2
		assert.InEpsilon(t, want, alt, 1e-9, "t=%v", ts)
	}
}

func TestAltitudeFallenEarlyFallIsNearlyFree(t *testing.T) {
	c := DefaultConstants()
	alt, err := NewFreeFall(c).AltitudeFallen(0.1)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.5*c.Gravity*0.1*0.1, alt, 1e-3)
}

func TestAltitudeFallenRejectsNegativeTime(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())

	_, err := ff.AltitudeFallen(-1)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = ff.AltitudeFallen(math.NaN())
	assert.ErrorIs(t, err, ErrDomain)
}

func TestFallTimeGolden(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())

	cases := []struct {
		feet float64
		want float64
	}{
		{0, 0},
		{25, 1.261055741198725},
		{50, 1.8039557239466826},
		{100, 2.609806066973728},
		{200, 3.8588362459507},
		{400, 5.938342655537351},
		{500, 6.907877474393773},
	}
	for _, tc := range cases {
		got, err := ff.FallTime(tc.feet/3.28084, flourSackMass, flourSackK)
		require.NoError(t, err)
		assert.InDelta(t, tc.want, got, 1e-9, "altitude %v ft", tc.feet)
	}
}

func TestFallTimeLargeDistanceStaysFinite(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())

	// d·k/m is far beyond where e^(d·k/m) overflows
	got, err := ff.FallTime(1e6, flourSackMass, flourSackK)
	require.NoError(t, err)
	assert.False(t, math.IsInf(got, 0))

	// and both branches agree where they meet
	d := coshSwitch * flourSackMass / flourSackK
	below, err := ff.FallTime(d*(1-1e-9), flourSackMass, flourSackK)
	require.NoError(t, err)
	above, err := ff.FallTime(d, flourSackMass, flourSackK)
	require.NoError(t, err)
	assert.InEpsilon(t, below, above, 1e-6)
}

func TestFallTimeDomainErrors(t *testing.T) {
	ff := NewFreeFall(DefaultConstants())

	tests := []struct {
		name     string
		distance float64
		mass     float64
		k        float64
	}{
		{"zero mass", 10, 0, flourSackK},
		{"negative mass", 10, -1, flourSackK},
		{"zero drag", 10, flourSackMass, 0},
		{"negative drag", 10, flourSackMass, -0.5},
		{"negative distance", -10, flourSackMass, flourSackK},
		{"nan distance", math.NaN(), flourSackMass, flourSackK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ff.FallTime(tt.distance, tt.mass, tt.k)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDomain)

			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "fall time", perr.Op)
		})
	}
}

func TestFreeFallBadGravity(t *testing.T) {
	c := DefaultConstants()
	c.Gravity = 0
	_, err := NewFreeFall(c).AltitudeFallen(1)
	assert.ErrorIs(t, err, ErrConfiguration)
}
