package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triangulate/api/internal/game"
	"github.com/triangulate/api/internal/sphere"
)

// EdgesResponse carries the three densified triangle edges as
// longitude-unwrapped paths, ready to draw on a flat map, plus the
// projected planar outline for clients that shade the interior.
type EdgesResponse struct {
	Edges         [3][]sphere.Point `json:"edges"`
	PlanarOutline [][2]float64      `json:"planarOutline"`
	MeanEdgeKm    float64           `json:"meanEdgeKm"`
	Difficulty    string            `json:"difficulty"`
}

func handleGameEdges(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "game")

		var (
			tri     sphere.Triangle
			outline [][2]float64
			ok      bool
		)
		err := games.Do(token, func(s *game.State) error {
			tri, ok = s.Triangle()
			outline, _ = s.PlanarOutline()
			return nil
		})
		if err != nil {
			writeGameError(w, games, token, err)
			return
		}
		if !ok {
			writeError(w, http.StatusConflict, "triangle is not complete yet")
			return
		}

		edge := tri.MeanEdgeKm()
		writeJSON(w, http.StatusOK, EdgesResponse{
			Edges:         sphere.EdgePaths(tri),
			PlanarOutline: outline,
			MeanEdgeKm:    edge,
			Difficulty:    string(sphere.Classify(edge)),
		})
	}
}
