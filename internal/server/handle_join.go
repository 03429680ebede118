package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/triangulate/api/internal/game"
)

// JoinGameResponse returns the claimed seat and its private claim key.
type JoinGameResponse struct {
	Game     string        `json:"game"`
	Player   int           `json:"player"`
	ClaimKey string        `json:"claimKey"`
	State    game.Snapshot `json:"state"`
}

func handleJoinGame(games *game.Registry, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "game")

		player, claimKey, err := games.Join(token)
		if err != nil {
			writeGameError(w, games, token, err)
			return
		}

		snap, err := games.Snapshot(token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		broker.Publish(token, GameEvent{
			Type:    "player_joined",
			Player:  player,
			Stage:   string(snap.Stage),
			Version: snap.Version,
		})

		writeJSON(w, http.StatusOK, JoinGameResponse{
			Game:     token,
			Player:   player,
			ClaimKey: claimKey,
			State:    snap,
		})
	}
}
