package server

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"time"

	"github.com/triangulate/api/internal/game"
	"github.com/triangulate/api/internal/sphere"
)

// CreateGameRequest is the request body for POST /api/games.
type CreateGameRequest struct {
	Players int `json:"players"`
	Rounds  int `json:"rounds"`
	// Difficulty is required when Auto is set and ignored otherwise.
	Difficulty string `json:"difficulty,omitempty"`
	// Auto asks the server to pick the three triangle cities instead
	// of the players entering them turn by turn.
	Auto bool `json:"auto,omitempty"`
}

// CreateGameResponse returns the shareable game token, the creator's
// seat and private claim key, and the initial snapshot.
type CreateGameResponse struct {
	Game     string        `json:"game"`
	Player   int           `json:"player"`
	ClaimKey string        `json:"claimKey"`
	State    game.Snapshot `json:"state"`
}

func handleCreateGame(logger *slog.Logger, d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		var diff sphere.Difficulty
		if req.Auto {
			diff = sphere.Difficulty(req.Difficulty)
			if req.Difficulty == "" {
				diff = sphere.Medium
			}
			if !diff.Valid() {
				writeError(w, http.StatusBadRequest, "difficulty must be easy, medium or hard")
				return
			}
		}

		cfg := game.Config{Players: req.Players, Rounds: req.Rounds, Difficulty: diff}

		// Resolve the auto triangle before creating anything, so a
		// geocoder outage never leaves a half-set-up game behind.
		var vertices []game.City
		if req.Auto {
			ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
			defer cancel()

			rng := rand.New(rand.NewSource(time.Now().UnixNano()))
			cities, matched, err := game.GenerateTriangle(ctx, d.Resolver, d.Gazetteer, diff, rng)
			if err != nil {
				logger.Error("triangle generation failed", "difficulty", diff, "error", err)
				writeError(w, http.StatusBadGateway, "could not generate a triangle, try again")
				return
			}
			if !matched {
				logger.Info("triangle generation fell back outside the difficulty band", "difficulty", diff)
			}
			vertices = cities
		}

		token, claimKey, err := d.Games.Create(cfg)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		if vertices != nil {
			err := d.Games.Do(token, func(s *game.State) error {
				for _, c := range vertices {
					if err := s.AddVertex(s.Turn(), c); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				// Generated vertices passed NewTriangle already, so
				// this only fires on a duplicate pick.
				d.Games.Delete(token)
				logger.Error("placing generated vertices failed", "error", err)
				writeError(w, http.StatusBadGateway, "could not generate a triangle, try again")
				return
			}
		}

		snap, err := d.Games.Snapshot(token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, CreateGameResponse{
			Game:     token,
			Player:   1,
			ClaimKey: claimKey,
			State:    snap,
		})
	}
}
