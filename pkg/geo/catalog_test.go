package geo

import (
	"fmt"
	"testing"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog(earthRadiusMiles)
	err := c.Add(
		models.Target{ID: "target-center", Location: targetCenter},
		models.Target{ID: "runway-number", Location: runwayNumber},
		models.Target{ID: "seattle", Location: models.GeoPoint{Lat: 47.6062, Lon: -122.3321}},
		models.Target{ID: "portland", Location: models.GeoPoint{Lat: 45.5152, Lon: -122.6784}},
	)
	require.NoError(t, err)
	return c
}

func TestCatalogAddAndLookup(t *testing.T) {
	c := testCatalog(t)
	assert.Equal(t, 4, c.Len())

	got, ok := c.Lookup("runway-number")
	require.True(t, ok)
	assert.Equal(t, runwayNumber, got.Location)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	ids := make([]string, 0, c.Len())
	for _, target := range c.Targets() {
		ids = append(ids, target.ID)
	}
	assert.Equal(t, []string{"portland", "runway-number", "seattle", "target-center"}, ids)
}

func TestCatalogRejectsBadTargets(t *testing.T) {
	c := testCatalog(t)

	assert.Error(t, c.Add(models.Target{ID: "seattle"}))
	assert.Error(t, c.Add(models.Target{Location: targetCenter}))
	assert.Equal(t, 4, c.Len())
}

func TestCatalogNearest(t *testing.T) {
	c := testCatalog(t)

	// just off the runway numbers
	near, err := c.Nearest(models.GeoPoint{Lat: 48.1561, Lon: -122.1577}, 2)
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "runway-number", near[0].ID)
	assert.Equal(t, "target-center", near[1].ID)

	all, err := c.Nearest(models.GeoPoint{Lat: 45.5, Lon: -122.6}, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "portland", all[0].ID)

	none, err := c.Nearest(targetCenter, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	none, err = NewCatalog(earthRadiusMiles).Nearest(targetCenter, 3)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogAntimeridian(t *testing.T) {
	c := NewCatalog(earthRadiusMiles)
	require.NoError(t, c.Add(
		models.Target{ID: "across", Location: models.GeoPoint{Lat: 0, Lon: 179.95}},
		models.Target{ID: "far", Location: models.GeoPoint{Lat: 5, Lon: -175}},
	))
	center := models.GeoPoint{Lat: 0, Lon: -179.95}
	require.InDelta(t, 6.9, Distance(center, models.GeoPoint{Lat: 0, Lon: 179.95}, earthRadiusMiles), 0.1)

	got, err := c.WithinRadius(center, 20)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "across", got[0].ID)

	near, err := c.Nearest(center, 1)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "across", near[0].ID)

	near, err = c.Nearest(center, 2)
	require.NoError(t, err)
	require.Len(t, near, 2)
	assert.Equal(t, "far", near[1].ID)

	// same meridian written as +190
	near, err = c.Nearest(models.GeoPoint{Lat: 0, Lon: 180.05}, 1)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "across", near[0].ID)
}

func TestCatalogDateline(t *testing.T) {
	c := NewCatalog(earthRadiusMiles)
	require.NoError(t, c.Add(models.Target{ID: "dateline", Location: models.GeoPoint{Lat: 10, Lon: 180}}))

	for _, lon := range []float64{179.99, -179.99} {
		got, err := c.WithinRadius(models.GeoPoint{Lat: 10, Lon: lon}, 1)
		require.NoError(t, err)
		require.Len(t, got, 1, "lon %v", lon)
		assert.Equal(t, "dateline", got[0].ID)
	}
}

func TestCatalogNearPole(t *testing.T) {
	c := NewCatalog(earthRadiusMiles)
	require.NoError(t, c.Add(
		models.Target{ID: "over-the-top", Location: models.GeoPoint{Lat: 89.99, Lon: -175}},
		models.Target{ID: "south", Location: models.GeoPoint{Lat: 89.5, Lon: 10}},
	))
	center := models.GeoPoint{Lat: 89.99, Lon: 10}

	got, err := c.WithinRadius(center, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "over-the-top", got[0].ID)

	near, err := c.Nearest(center, 1)
	require.NoError(t, err)
	require.Len(t, near, 1)
	assert.Equal(t, "over-the-top", near[0].ID)
}

func TestSearchWindows(t *testing.T) {
	angle := 20 / earthRadiusMiles

	windows := searchWindows(models.GeoPoint{Lat: 10, Lon: 20}, angle)
	require.Len(t, windows, 1)
	assert.Less(t, windows[0].BottomLeft.Lon, 20.0)
	assert.Greater(t, windows[0].TopRight.Lon, 20.0)
	assert.InDelta(t, 10-degrees(angle), windows[0].BottomLeft.Lat, 1e-12)

	windows = searchWindows(models.GeoPoint{Lat: 0, Lon: -179.95}, angle)
	require.Len(t, windows, 2)
	assert.Equal(t, 180.0, windows[0].TopRight.Lon)
	assert.Greater(t, windows[0].BottomLeft.Lon, 179.0)
	assert.Equal(t, -180.0, windows[1].BottomLeft.Lon)
	assert.Less(t, windows[1].TopRight.Lon, -179.0)

	windows = searchWindows(models.GeoPoint{Lat: 0, Lon: 179.95}, angle)
	require.Len(t, windows, 2)
	assert.Equal(t, 180.0, windows[0].TopRight.Lon)
	assert.Equal(t, -180.0, windows[1].BottomLeft.Lon)

	windows = searchWindows(models.GeoPoint{Lat: 89.99, Lon: 10}, 5/earthRadiusMiles)
	require.Len(t, windows, 1)
	assert.Equal(t, -180.0, windows[0].BottomLeft.Lon)
	assert.Equal(t, 180.0, windows[0].TopRight.Lon)
	assert.Equal(t, 90.0, windows[0].TopRight.Lat)
}

func TestNormalizeLon(t *testing.T) {
	for in, want := range map[float64]float64{
		0:      0,
		179.5:  179.5,
		180:    -180,
		190:    -170,
		-190:   170,
		-180:   -180,
		540.25: -179.75,
	} {
		assert.InDelta(t, want, normalizeLon(in), 1e-9, "lon %v", in)
	}
}

func TestCatalogWithinRadius(t *testing.T) {
	c := testCatalog(t)

	got, err := c.WithinRadius(targetCenter, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "runway-number", got[0].ID)
	assert.Equal(t, "target-center", got[1].ID)

	got, err = c.WithinRadius(targetCenter, 50)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = c.WithinRadius(targetCenter, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "target-center", got[0].ID)

	_, err = c.WithinRadius(targetCenter, -1)
	assert.Error(t, err)
}

func BenchmarkCatalogNearest(b *testing.B) {
	c := NewCatalog(earthRadiusMiles)
	for i := 0; i < 10000; i++ {
		lat := float64(i%100)*0.5 - 25
		lon := float64(i/100)*0.5 - 25
		if err := c.Add(models.Target{ID: fmt.Sprintf("t%d", i), Location: models.GeoPoint{Lat: lat, Lon: lon}}); err != nil {
			b.Fatal(err)
		}
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := c.Nearest(models.GeoPoint{Lat: 1.1, Lon: 2.2}, 5); err != nil {
			b.Fatal(err)
		}
	}
}
