package geocode

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/triangulate/api/internal/cityname"
)

// Cache is a read-through cache in front of a Resolver, keyed by the
// normalized query. Concurrent identical lookups collapse into one
// provider call via singleflight. Failures are not cached: a transient
// provider outage must stay retryable.
type Cache struct {
	next Resolver

	mu      sync.RWMutex
	entries map[cacheKey]City
	group   singleflight.Group
}

type cacheKey struct {
	name       string
	requirePop bool
}

func NewCache(next Resolver) *Cache {
	return &Cache{
		next:    next,
		entries: make(map[cacheKey]City),
	}
}

func (c *Cache) Resolve(ctx context.Context, name string, requirePopulation bool) (City, error) {
	key := cacheKey{name: cityname.Normalize(name), requirePop: requirePopulation}

	c.mu.RLock()
	city, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return city, nil
	}

	v, err, _ := c.group.Do(key.name+"\x00"+boolKey(requirePopulation), func() (any, error) {
		city, err := c.next.Resolve(ctx, name, requirePopulation)
		if err != nil {
			return City{}, err
		}
		c.mu.Lock()
		c.entries[key] = city
		c.mu.Unlock()
		return city, nil
	})
	if err != nil {
		return City{}, err
	}
	return v.(City), nil
}

func boolKey(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
