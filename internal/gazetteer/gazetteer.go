// Package gazetteer serves a bulk, locally embedded table of world
// cities. It backs best-score benchmarking, population fallback and
// random triangle generation, independent of the live geocoding path.
package gazetteer

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"

	"github.com/triangulate/api/internal/cityname"
	"github.com/triangulate/api/internal/sphere"
)

//go:embed cities.csv
var dataFS embed.FS

// City is one reference dataset row.
type City struct {
	Name       string
	ASCII      string
	Country    string
	Region     string
	Point      sphere.Point
	Population int
}

// Gazetteer holds the loaded dataset, cities sorted by population
// descending.
type Gazetteer struct {
	cities   []City
	byName   map[string]int
	byRegion map[string][]int
	regions  []string
}

// Load parses the embedded dataset. The dataset is static, so Load is
// called once at startup.
func Load() (*Gazetteer, error) {
	f, err := dataFS.Open("cities.csv")
	if err != nil {
		return nil, fmt.Errorf("opening embedded dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if _, err := r.Read(); err != nil { // header
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	g := &Gazetteer{
		byName:   make(map[string]int),
		byRegion: make(map[string][]int),
	}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		c, err := parseCity(rec)
		if err != nil {
			return nil, err
		}
		g.cities = append(g.cities, c)
	}

	sort.SliceStable(g.cities, func(i, j int) bool {
		return g.cities[i].Population > g.cities[j].Population
	})
	for i, c := range g.cities {
		for _, key := range []string{cityname.Normalize(c.Name), cityname.Normalize(c.ASCII)} {
			if _, dup := g.byName[key]; !dup {
				g.byName[key] = i
			}
		}
		if _, seen := g.byRegion[c.Region]; !seen {
			g.regions = append(g.regions, c.Region)
		}
		g.byRegion[c.Region] = append(g.byRegion[c.Region], i)
	}
	sort.Strings(g.regions)
	return g, nil
}

func parseCity(rec []string) (City, error) {
	if len(rec) != 7 {
		return City{}, fmt.Errorf("dataset row has %d fields, want 7", len(rec))
	}
	lat, err := strconv.ParseFloat(rec[4], 64)
	if err != nil {
		return City{}, fmt.Errorf("city %q: bad latitude: %w", rec[0], err)
	}
	lon, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return City{}, fmt.Errorf("city %q: bad longitude: %w", rec[0], err)
	}
	pop, err := strconv.Atoi(rec[6])
	if err != nil {
		return City{}, fmt.Errorf("city %q: bad population: %w", rec[0], err)
	}
	return City{
		Name:       rec[0],
		ASCII:      rec[1],
		Country:    rec[2],
		Region:     rec[3],
		Point:      sphere.Point{Lat: lat, Lon: lon}.Normalize(),
		Population: pop,
	}, nil
}

// Len returns the number of cities in the dataset.
func (g *Gazetteer) Len() int {
	return len(g.cities)
}

// Lookup finds a city by name, matching the native or ASCII spelling
// after normalization.
func (g *Gazetteer) Lookup(name string) (City, bool) {
	i, ok := g.byName[cityname.Normalize(name)]
	if !ok {
		return City{}, false
	}
	return g.cities[i], true
}

// Population returns the known population for name, or 0.
func (g *Gazetteer) Population(name string) int {
	c, ok := g.Lookup(name)
	if !ok {
		return 0
	}
	return c.Population
}

// TopInside selects up to n highest-population cities inside tri whose
// normalized names are not in exclude, sorted by population descending.
// The dataset is already population-sorted, so one pass suffices.
func (g *Gazetteer) TopInside(tri sphere.Triangle, exclude map[string]bool, n int) []City {
	var out []City
	for _, c := range g.cities {
		if len(out) == n {
			break
		}
		if exclude[cityname.Normalize(c.Name)] || exclude[cityname.Normalize(c.ASCII)] {
			continue
		}
		if tri.Contains(c.Point) {
			out = append(out, c)
		}
	}
	return out
}

// Regions lists the region tags present in the dataset.
func (g *Gazetteer) Regions() []string {
	return g.regions
}

// SampleRegion picks k distinct random cities from one region. It
// returns false when the region has fewer than k cities.
func (g *Gazetteer) SampleRegion(rng *rand.Rand, region string, k int) ([]City, bool) {
	idx := g.byRegion[region]
	if len(idx) < k {
		return nil, false
	}
	picks := rng.Perm(len(idx))[:k]
	out := make([]City, k)
	for i, p := range picks {
		out[i] = g.cities[idx[p]]
	}
	return out, true
}

// SampleAcrossRegions picks k cities from k distinct regions.
func (g *Gazetteer) SampleAcrossRegions(rng *rand.Rand, k int) ([]City, bool) {
	if len(g.regions) < k {
		return nil, false
	}
	picks := rng.Perm(len(g.regions))[:k]
	out := make([]City, k)
	for i, p := range picks {
		idx := g.byRegion[g.regions[p]]
		out[i] = g.cities[idx[rng.Intn(len(idx))]]
	}
	return out, true
}
