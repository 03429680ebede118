package server

import (
	"net/http"
	"strings"

	"github.com/triangulate/api/internal/game"
)

// CityRequest is the request body for vertex and submission posts.
type CityRequest struct {
	City string `json:"city"`
}

// VertexResponse echoes the resolved vertex and the new snapshot.
type VertexResponse struct {
	Accepted game.City     `json:"accepted"`
	State    game.Snapshot `json:"state"`
}

func handleVertex(d Deps, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat, err := seatFromRequest(r, d.Games)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing claim key")
			return
		}

		var req CityRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.City = strings.TrimSpace(req.City)
		if req.City == "" {
			writeError(w, http.StatusBadRequest, "city is required")
			return
		}

		// Resolution happens outside the game's critical section; if
		// two players race, the turn check decides inside it.
		resolved, err := d.Resolver.Resolve(r.Context(), req.City, false)
		if err != nil {
			writeGeocodeError(w, err)
			return
		}
		city := game.City{
			Point:      resolved.Point,
			Name:       resolved.Name,
			LocalName:  resolved.LocalName,
			Population: resolved.Population,
		}

		err = d.Games.Do(seat.Game, func(s *game.State) error {
			return s.AddVertex(seat.Player, city)
		})
		if err != nil {
			writeGameError(w, d.Games, seat.Game, err)
			return
		}

		snap, err := d.Games.Snapshot(seat.Game)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(seat.Game, GameEvent{
			Type:    "vertex_accepted",
			Player:  seat.Player,
			Stage:   string(snap.Stage),
			Version: snap.Version,
		})

		writeJSON(w, http.StatusOK, VertexResponse{Accepted: city, State: snap})
	}
}
