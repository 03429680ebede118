// Package geocode resolves free-text city names to coordinates,
// canonical names and population against a Nominatim-style provider.
// Resolution failures are classified into sentinel reasons so handlers
// can surface a specific message without inspecting provider payloads.
package geocode

import (
	"context"
	"errors"

	"github.com/triangulate/api/internal/sphere"
)

// Resolution reasons. Handlers map these to user-facing messages; all
// of them leave game state untouched.
var (
	ErrNotACity          = errors.New("geocode: result is not a city")
	ErrCountrySelected   = errors.New("geocode: a country was selected, not a city")
	ErrNoCloseMatch      = errors.New("geocode: no close match for that name")
	ErrPopulationMissing = errors.New("geocode: population unknown")
	ErrUnavailable       = errors.New("geocode: service unavailable")
	ErrNotFound          = errors.New("geocode: not found")
)

// City is a successful resolution.
type City struct {
	Point sphere.Point `json:"point"`
	// Name is the canonical short label (segment before the first
	// comma of the provider display name).
	Name string `json:"name"`
	// LocalName is the endonym reported by the provider, when it
	// differs from Name.
	LocalName  string `json:"localName,omitempty"`
	Population int    `json:"population"`
}

// Resolver turns a city name into a City. requirePopulation makes a
// missing population a failure instead of a zero value.
type Resolver interface {
	Resolve(ctx context.Context, name string, requirePopulation bool) (City, error)
}
