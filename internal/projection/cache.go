package projection

import (
	"math"
	"sync"

	"github.com/triangulate/api/internal/sphere"
)

const cacheSize = 8

type cacheKey struct {
	lat, lon float64
}

// Cache keeps a small bounded set of projections keyed by center.
// Building a projection is cheap but repeated per request for the same
// triangle, so the same handful of centers dominates.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey]*Projection
	order   []cacheKey
}

func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]*Projection, cacheSize)}
}

// For returns the projection centered on c, building and caching it on
// first use. Centers are keyed at micro-degree resolution.
func (cc *Cache) For(c sphere.Point) *Projection {
	c = c.Normalize()
	key := cacheKey{
		lat: math.Round(c.Lat*1e6) / 1e6,
		lon: math.Round(c.Lon*1e6) / 1e6,
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	if p, ok := cc.entries[key]; ok {
		return p
	}
	if len(cc.order) >= cacheSize {
		oldest := cc.order[0]
		cc.order = cc.order[1:]
		delete(cc.entries, oldest)
	}
	p := New(c)
	cc.entries[key] = p
	cc.order = append(cc.order, key)
	return p
}
