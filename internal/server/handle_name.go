package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/triangulate/api/internal/game"
)

// NameRequest is the request body for POST /api/games/{game}/name.
type NameRequest struct {
	Name string `json:"name"`
}

// handlePlayerName records a display name during name entry. The last
// name finishes the game: the best-score benchmark is computed inside
// the game's critical section (the gazetteer is in memory, no I/O) and
// the final standings go to the leaderboard afterwards.
func handlePlayerName(logger *slog.Logger, d Deps, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		seat, err := seatFromRequest(r, d.Games)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or missing claim key")
			return
		}

		var req NameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		var (
			finished bool
			entries  []LeaderboardEntry
		)
		err = d.Games.Do(seat.Game, func(s *game.State) error {
			if err := s.SetName(seat.Player, req.Name); err != nil {
				return err
			}
			if s.Stage() != game.StageFinished {
				return nil
			}
			finished = true

			tri, ok := s.Triangle()
			if !ok {
				return nil
			}
			best, _ := game.BestScore(tri, d.Gazetteer, s.UsedNames(), d.BestScoreN)
			s.SetBestScore(best)

			scores := s.FinalScores()
			names := s.PlayerNames()
			diff := string(s.Snapshot().Difficulty)
			for i, score := range scores {
				e := LeaderboardEntry{
					GameToken:  seat.Game,
					PlayerName: names[i],
					Score:      score,
					BestScore:  best,
					Rounds:     s.Config().Rounds,
					Difficulty: diff,
				}
				if best > 0 {
					e.Efficiency = float64(score) / float64(best)
				}
				entries = append(entries, e)
			}
			return nil
		})
		if err != nil {
			writeGameError(w, d.Games, seat.Game, err)
			return
		}

		if len(entries) > 0 {
			if err := d.Store.AddLeaderboardEntries(r.Context(), entries); err != nil {
				// The game result stands even when persistence fails.
				logger.Error("persisting leaderboard entries failed", "game", seat.Game, "error", err)
			}
		}

		snap, err := d.Games.Snapshot(seat.Game)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		event := GameEvent{
			Type:    "name_set",
			Player:  seat.Player,
			Stage:   string(snap.Stage),
			Version: snap.Version,
		}
		if finished {
			event.Type = "finished"
		}
		broker.Publish(seat.Game, event)

		writeJSON(w, http.StatusOK, snap)
	}
}
