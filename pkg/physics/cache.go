package physics

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedSimulator memoizes successful time-to-impact results by altitude.
// It is safe for concurrent use.
type CachedSimulator struct {
	next  ImpactPredictor
	cache *lru.Cache[float64, float64]
}

func NewCachedSimulator(next ImpactPredictor, size int) (*CachedSimulator, error) {
	cache, err := lru.New[float64, float64](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create impact cache: %w", err)
	}
	return &CachedSimulator{next: next, cache: cache}, nil
}

func (c *CachedSimulator) TimeToImpact(altitudeMeters float64) (float64, error) {
	if t, ok := c.cache.Get(altitudeMeters); ok {
		return t, nil
	}
	t, err := c.next.TimeToImpact(altitudeMeters)
	if err != nil {
		return 0, err
	}
	c.cache.Add(altitudeMeters, t)
	return t, nil
}

// Len returns the number of cached altitudes
func (c *CachedSimulator) Len() int {
	return c.cache.Len()
}
