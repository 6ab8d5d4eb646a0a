package geo

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/1F47E/go-bombsight/pkg/models"
	"github.com/dhconnelly/rtreego"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialTarget wraps a target for R-Tree indexing
type spatialTarget struct {
	*models.Target
	rect *rtreego.Rect
}

func (st *spatialTarget) Bounds() *rtreego.Rect {
	return st.rect
}

// Catalog is a thread-safe R-Tree index of named targets. Distances are in
// the unit of the earth radius it was created with.
type Catalog struct {
	tree        *rtreego.Rtree
	byID        map[string]*models.Target
	earthRadius float64
	mu          sync.RWMutex
}

// NewCatalog creates an empty catalog
func NewCatalog(earthRadius float64) *Catalog {
	return &Catalog{
		tree:        rtreego.NewTree(dimensions, minChildren, maxChildren),
		byID:        make(map[string]*models.Target),
		earthRadius: earthRadius,
	}
}

// Add indexes targets. IDs must be unique and non-empty.
func (c *Catalog) Add(targets ...models.Target) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range targets {
		if t.ID == "" {
			return fmt.Errorf("target at %v has no id", t.Location)
		}
		if _, ok := c.byID[t.ID]; ok {
			return fmt.Errorf("duplicate target id %q", t.ID)
		}
		target := t
		p := rtreego.Point{target.Location.Lat, normalizeLon(target.Location.Lon)}
		c.tree.Insert(&spatialTarget{&target, p.ToRect(tolerance)})
		c.byID[target.ID] = &target
	}
	return nil
}

// Lookup returns the target with the given id
func (c *Catalog) Lookup(id string) (models.Target, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.byID[id]
	if !ok {
		return models.Target{}, false
	}
	return *t, true
}

// Len returns the number of indexed targets
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Targets returns every target ordered by id
func (c *Catalog) Targets() []models.Target {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Target, 0, len(c.byID))
	for _, t := range c.byID {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Nearest returns up to n targets closest to p by great-circle distance.
// Ties are broken by id.
func (c *Catalog) Nearest(p models.GeoPoint, n int) ([]models.Target, error) {
	if n <= 0 {
		return nil, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// The tree ranks by planar degrees, which is wrong across the antimeridian
	// and near the poles. Its n neighbours only bound the search: at least n
	// targets lie within the great-circle distance of the farthest one.
	bound := -1.0
	for _, sp := range c.tree.NearestNeighbors(n, rtreego.Point{p.Lat, normalizeLon(p.Lon)}) {
		st, ok := sp.(*spatialTarget)
		if !ok || st == nil {
			continue
		}
		bound = math.Max(bound, Distance(p, st.Location, c.earthRadius))
	}
	if bound < 0 {
		return nil, nil
	}

	candidates, err := c.withinRadius(p, bound)
	if err != nil {
		return nil, err
	}
	distance := make(map[string]float64, len(candidates))
	for _, t := range candidates {
		distance[t.ID] = Distance(p, t.Location, c.earthRadius)
	}
	sort.Slice(candidates, func(i, j int) bool {
		di, dj := distance[candidates[i].ID], distance[candidates[j].ID]
		if di != dj {
			return di < dj
		}
		return candidates[i].ID < candidates[j].ID
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// WithinRadius returns all targets no farther than radius from center,
// ordered by id.
func (c *Catalog) WithinRadius(center models.GeoPoint, radius float64) ([]models.Target, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("invalid radius %v", radius)
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out, err := c.withinRadius(center, radius)
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// withinRadius expects the read lock to be held.
func (c *Catalog) withinRadius(center models.GeoPoint, radius float64) ([]models.Target, error) {
	seen := make(map[string]bool)
	var out []models.Target
	for _, box := range searchWindows(center, radius/c.earthRadius) {
		bounds, err := rtreego.NewRect(
			rtreego.Point{box.BottomLeft.Lat - tolerance, box.BottomLeft.Lon - tolerance},
			[]float64{
				box.TopRight.Lat - box.BottomLeft.Lat + 2*tolerance,
				box.TopRight.Lon - box.BottomLeft.Lon + 2*tolerance,
			},
		)
		if err != nil {
			return nil, fmt.Errorf("invalid radius search: %w", err)
		}

		for _, sp := range c.tree.SearchIntersect(bounds) {
			st, ok := sp.(*spatialTarget)
			if !ok || st == nil || seen[st.ID] {
				continue
			}
			if Distance(center, st.Location, c.earthRadius) <= radius {
				seen[st.ID] = true
				out = append(out, *st.Target)
			}
		}
	}
	return out, nil
}

// searchWindows returns the latitude/longitude boxes covering every point
// within angle radians of center. Longitudes are in [-180, 180]. A window
// crossing the antimeridian is split in two, and one reaching a pole spans
// every longitude.
func searchWindows(center models.GeoPoint, angle float64) []models.BoundingBox {
	latDeg := degrees(angle)
	minLat, maxLat := center.Lat-latDeg, center.Lat+latDeg
	full := []models.BoundingBox{{
		BottomLeft: models.GeoPoint{Lat: math.Max(minLat, -90), Lon: -180},
		TopRight:   models.GeoPoint{Lat: math.Min(maxLat, 90), Lon: 180},
	}}
	if minLat <= -90 || maxLat >= 90 {
		return full
	}

	// widest longitude offset of a spherical cap that misses both poles
	ratio := math.Sin(angle) / math.Cos(radians(center.Lat))
	if ratio >= 1 {
		return full
	}
	lonDeg := degrees(math.Asin(ratio))
	lon := normalizeLon(center.Lon)
	minLon, maxLon := lon-lonDeg, lon+lonDeg

	box := func(west, east float64) models.BoundingBox {
		return models.BoundingBox{
			BottomLeft: models.GeoPoint{Lat: minLat, Lon: west},
			TopRight:   models.GeoPoint{Lat: maxLat, Lon: east},
		}
	}
	switch {
	case minLon <= -180:
		return []models.BoundingBox{box(minLon+360, 180), box(-180, maxLon)}
	case maxLon >= 180:
		return []models.BoundingBox{box(minLon, 180), box(-180, maxLon-360)}
	default:
		return []models.BoundingBox{box(minLon, maxLon)}
	}
}

// normalizeLon maps a longitude into [-180, 180).
func normalizeLon(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
