package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/triangulate/api/internal/game"
)

// handleGameState serves the current snapshot. A client polling with
// ?since=<version> gets 304 when nothing was accepted since its last
// snapshot, keeping the poll loop cheap.
func handleGameState(games *game.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "game")

		snap, err := games.Snapshot(token)
		if err != nil {
			writeGameError(w, games, token, err)
			return
		}

		if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
			since, err := strconv.ParseUint(sinceStr, 10, 64)
			if err != nil {
				writeError(w, http.StatusBadRequest, "since must be a version number")
				return
			}
			if since == snap.Version {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}

		writeJSON(w, http.StatusOK, snap)
	}
}
