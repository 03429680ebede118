package server

import (
	"net/http"

	"github.com/triangulate/api/internal/game"
)

// handleDeleteGame destroys a game. Only seat 1, the creator, may do
// it; the event tells remaining watchers their game is gone.
func handleDeleteGame(games *game.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat, err := seatFromRequest(r, games)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing claim key")
			return
		}
		if seat.Player != 1 {
			writeError(w, http.StatusForbidden, "only the creator can delete the game")
			return
		}

		if err := games.Delete(seat.Game); err != nil {
			writeGameError(w, games, seat.Game, err)
			return
		}

		broker.Publish(seat.Game, GameEvent{Type: "game_deleted"})

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
