package game

import (
	"context"
	"errors"
	"math/rand"

	"github.com/triangulate/api/internal/gazetteer"
	"github.com/triangulate/api/internal/geocode"
	"github.com/triangulate/api/internal/sphere"
)

const genAttempts = 8

// Resolver is the subset of the geocoding client used by triangle
// generation.
type Resolver interface {
	Resolve(ctx context.Context, name string, requirePopulation bool) (geocode.City, error)
}

// GenerateTriangle picks three cities whose triangle matches the
// requested difficulty. Candidate names are sampled from the reference
// dataset — same-region for Hard (small triangles), cross-region
// otherwise — then resolved through the live geocoder so the vertices
// carry canonical names. After genAttempts misses it falls back to the
// last resolvable candidate set, reporting matched=false. If no
// candidate set resolves at all it returns ErrNoCandidates.
func GenerateTriangle(ctx context.Context, res Resolver, gaz *gazetteer.Gazetteer, diff sphere.Difficulty, rng *rand.Rand) (cities []City, matched bool, err error) {
	var last []City

	for attempt := 0; attempt < genAttempts; attempt++ {
		names, ok := sampleNames(gaz, diff, rng)
		if !ok {
			continue
		}

		resolved, err := resolveAll(ctx, res, names)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, false, err
			}
			continue
		}

		tri, err := sphere.NewTriangle(resolved[0].Point, resolved[1].Point, resolved[2].Point)
		if err != nil {
			continue
		}
		last = resolved
		if sphere.Classify(tri.MeanEdgeKm()) == diff {
			return resolved, true, nil
		}
	}

	if last == nil {
		return nil, false, ErrNoCandidates
	}
	return last, false, nil
}

func sampleNames(gaz *gazetteer.Gazetteer, diff sphere.Difficulty, rng *rand.Rand) ([]string, bool) {
	var picks []gazetteer.City
	var ok bool
	if diff == sphere.Hard {
		regions := gaz.Regions()
		if len(regions) == 0 {
			return nil, false
		}
		picks, ok = gaz.SampleRegion(rng, regions[rng.Intn(len(regions))], 3)
	} else {
		picks, ok = gaz.SampleAcrossRegions(rng, 3)
	}
	if !ok {
		return nil, false
	}
	names := make([]string, len(picks))
	for i, c := range picks {
		names[i] = c.Name
	}
	return names, true
}

func resolveAll(ctx context.Context, res Resolver, names []string) ([]City, error) {
	out := make([]City, len(names))
	for i, n := range names {
		c, err := res.Resolve(ctx, n, false)
		if err != nil {
			return nil, err
		}
		out[i] = City{
			Point:      c.Point,
			Name:       c.Name,
			LocalName:  c.LocalName,
			Population: c.Population,
		}
	}
	return out, nil
}
