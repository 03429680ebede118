package game

import (
	"github.com/triangulate/api/internal/gazetteer"
	"github.com/triangulate/api/internal/sphere"
)

// BestScore benchmarks the triangle: the sum of populations of the n
// highest-population reference cities inside tri that were not already
// used in the game. It runs the same containment predicate as scoring,
// so the benchmark can never disagree with an in-game verdict.
func BestScore(tri sphere.Triangle, gaz *gazetteer.Gazetteer, used map[string]bool, n int) (int, []gazetteer.City) {
	top := gaz.TopInside(tri, used, n)
	sum := 0
	for _, c := range top {
		sum += c.Population
	}
	return sum, top
}
