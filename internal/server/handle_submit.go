package server

import (
	"net/http"
	"strings"

	"github.com/triangulate/api/internal/game"
)

// SubmitResponse confirms an accepted submission. It never carries the
// containment verdict or the population: play is blind until the game
// finishes.
type SubmitResponse struct {
	Accepted string        `json:"accepted"`
	Order    int           `json:"order"`
	State    game.Snapshot `json:"state"`
}

func handleSubmit(d Deps, broker *Broker) http.HandlerFunc {
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

		var sub game.Submission
		err = d.Games.Do(seat.Game, func(s *game.State) error {
			var err error
			sub, err = s.Submit(seat.Player, city)
			return err
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
			Type:    "city_submitted",
			Player:  seat.Player,
			Stage:   string(snap.Stage),
			Version: snap.Version,
		})

		writeJSON(w, http.StatusOK, SubmitResponse{
			Accepted: sub.Name,
			Order:    sub.Order,
			State:    snap,
		})
	}
}
