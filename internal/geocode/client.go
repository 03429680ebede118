package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/triangulate/api/internal/cityname"
	"github.com/triangulate/api/internal/sphere"
)

// Accepting the top candidate below this name similarity would pick a
// city the player did not mean; reject it as no-close-match instead.
const similarityThreshold = 0.62

const maxCandidates = 5

// PopulationLookup supplies a fallback population when the provider
// has none. The gazetteer implements it.
type PopulationLookup interface {
	Population(name string) int
}

// Client resolves city names against a Nominatim-style HTTP endpoint.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	fallback  PopulationLookup
}

// NewClient builds a client for the given provider base URL. fallback
// may be nil. The timeout bounds every lookup; geocoding is the only
// network call in the request path and must never hang a game session.
func NewClient(baseURL, userAgent string, timeout time.Duration, fallback PopulationLookup) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
		fallback:  fallback,
	}
}

type candidate struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	AddressType string            `json:"addresstype"`
	Importance  float64           `json:"importance"`
	ExtraTags   map[string]string `json:"extratags"`
}

// Resolve implements Resolver. Candidates are ranked by fuzzy name
// similarity combined with provider importance and population; the top
// candidate is rejected when its similarity falls below the threshold.
func (c *Client) Resolve(ctx context.Context, name string, requirePopulation bool) (City, error) {
	cands, err := c.search(ctx, name)
	if err != nil {
		return City{}, err
	}
	if len(cands) == 0 {
		return City{}, ErrNotFound
	}

	best, score := rank(name, cands)
	if isCountry(best) {
		return City{}, ErrCountrySelected
	}
	if !isSettlement(best) {
		return City{}, ErrNotACity
	}
	if score < similarityThreshold {
		return City{}, ErrNoCloseMatch
	}

	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil {
		return City{}, fmt.Errorf("%w: malformed coordinates", ErrUnavailable)
	}

	city := City{
		Point:      sphere.Point{Lat: lat, Lon: lon}.Normalize(),
		Name:       cityname.Short(best.DisplayName),
		Population: cityname.ParsePopulation(best.ExtraTags["population"]),
	}
	if best.Name != "" && best.Name != city.Name {
		city.LocalName = best.Name
	}
	if city.Name == "" {
		city.Name = best.Name
	}

	if city.Population == 0 && c.fallback != nil {
		city.Population = c.fallback.Population(city.Name)
	}
	if requirePopulation && city.Population == 0 {
		return City{}, ErrPopulationMissing
	}
	return city, nil
}

func (c *Client) search(ctx context.Context, name string) ([]candidate, error) {
	q := url.Values{
		"q":         {name},
		"format":    {"jsonv2"},
		"extratags": {"1"},
		"limit":     {strconv.Itoa(maxCandidates)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned %d", ErrUnavailable, resp.StatusCode)
	}

	var cands []candidate
	if err := json.NewDecoder(resp.Body).Decode(&cands); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrUnavailable, err)
	}
	return cands, nil
}

// rank scores every candidate and returns the best one with its name
// similarity. Similarity dominates; importance and population only
// break ties between candidates sharing a name.
func rank(query string, cands []candidate) (candidate, float64) {
	best := cands[0]
	bestSim := cityname.Similarity(query, bestName(best))
	bestScore := combined(bestSim, best)
	for _, cand := range cands[1:] {
		sim := cityname.Similarity(query, bestName(cand))
		if s := combined(sim, cand); s > bestScore {
			best, bestSim, bestScore = cand, sim, s
		}
	}
	return best, bestSim
}

func bestName(c candidate) string {
	if c.Name != "" {
		return c.Name
	}
	return cityname.Short(c.DisplayName)
}

func combined(sim float64, c candidate) float64 {
	pop := cityname.ParsePopulation(c.ExtraTags["population"])
	popBoost := 0.0
	if pop > 0 {
		// log10-ish bump: a metropolis outranks a village of the same name.
		for p := pop; p > 0; p /= 10 {
			popBoost += 0.01
		}
	}
	return sim + 0.1*c.Importance + popBoost
}

func isCountry(c candidate) bool {
	return c.AddressType == "country" || c.Type == "country"
}

func isSettlement(c candidate) bool {
	if c.Class != "place" && c.Class != "boundary" {
		return false
	}
	switch c.Type {
	case "city", "town", "village", "hamlet", "municipality", "administrative", "suburb":
		return true
	}
	return false
}
