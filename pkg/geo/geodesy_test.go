package geo

import (
	"math/rand"
	"testing"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/stretchr/testify/assert"
)

const earthRadiusMiles = 3958.8

var (
	targetCenter = models.GeoPoint{Lat: 48.160464, Lon: -122.166409}
	runwayNumber = models.GeoPoint{Lat: 48.155973, Lon: -122.157582}
)

func randomPoint(r *rand.Rand) models.GeoPoint {
	return models.GeoPoint{
		Lat: r.Float64()*180 - 90,
		Lon: r.Float64()*360 - 180,
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	points := []models.GeoPoint{targetCenter, runwayNumber, {Lat: 90, Lon: 0}, {Lat: -90, Lon: 180}}
	for i := 0; i < 100; i++ {
		points = append(points, randomPoint(r))
	}

	for _, p := range points {
		assert.InDelta(t, 0, Distance(p, p, earthRadiusMiles), 1e-9, "point %v", p)
	}
}

func TestDistanceIsSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		a, b := randomPoint(r), randomPoint(r)
		assert.Equal(t, Distance(a, b, earthRadiusMiles), Distance(b, a, earthRadiusMiles))
	}
}

func TestDistanceReference(t *testing.T) {
	d := Distance(targetCenter, runwayNumber, earthRadiusMiles)
	assert.InDelta(t, 0.5116738958169654, d, 1e-9)

	// quarter of the equator
	d = Distance(models.GeoPoint{}, models.GeoPoint{Lon: 90}, 1)
	assert.InDelta(t, 1.5707963267948966, d, 1e-12)
}

func TestBearingCardinal(t *testing.T) {
	origin := models.GeoPoint{}
	tests := []struct {
		name string
		to   models.GeoPoint
		want float64
	}{
		{"north", models.GeoPoint{Lat: 1}, 0},
		{"east", models.GeoPoint{Lon: 1}, 90},
		{"south", models.GeoPoint{Lat: -1}, 180},
		{"west", models.GeoPoint{Lon: -1}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Bearing(origin, tt.to), 1e-9)
		})
	}
}

func TestBearingIdenticalPoints(t *testing.T) {
	assert.Equal(t, 0.0, Bearing(targetCenter, targetCenter))
}

func TestBearingRange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		b := Bearing(randomPoint(r), randomPoint(r))
		assert.GreaterOrEqual(t, b, 0.0)
		assert.Less(t, b, 360.0)
	}
}

func TestBearingReference(t *testing.T) {
	// from the target center toward the runway numbers, roughly south-east
	assert.InDelta(t, 127.32953661579393, Bearing(targetCenter, runwayNumber), 1e-9)
	// the reverse leg is close to the back bearing on such a short hop
	assert.InDelta(t, 127.32953661579393+180, Bearing(runwayNumber, targetCenter), 0.01)
}

func BenchmarkDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = Distance(targetCenter, runwayNumber, earthRadiusMiles)
	}
}
