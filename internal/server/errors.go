package server

import (
	"errors"
	"net/http"

	"github.com/triangulate/api/internal/game"
	"github.com/triangulate/api/internal/geocode"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	// Version is the current game version on turn and stage
	// rejections, so a losing client can resync its poll cursor.
	Version uint64 `json:"version,omitempty"`
}

// writeGameError maps a game sentinel to an HTTP status. Turn and
// stage rejections carry the current version: the loser of a turn race
// learns how far ahead the accepted request moved the game.
func writeGameError(w http.ResponseWriter, games *game.Registry, token string, err error) {
	status := http.StatusConflict
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, "game not found")
		return
	case errors.Is(err, game.ErrInvalidSeat):
		writeError(w, http.StatusForbidden, "seat does not belong to this game")
		return
	case errors.Is(err, game.ErrDegenerateVertex):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrEmptyName):
		status = http.StatusBadRequest
	case errors.Is(err, game.ErrWrongStage),
		errors.Is(err, game.ErrNotYourTurn),
		errors.Is(err, game.ErrDuplicateCity),
		errors.Is(err, game.ErrVertexCollision),
		errors.Is(err, game.ErrGameFull):
		status = http.StatusConflict
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	resp := ErrorResponse{Error: err.Error()}
	if snap, snapErr := games.Snapshot(token); snapErr == nil {
		resp.Version = snap.Version
	}
	writeJSON(w, status, resp)
}

// writeGeocodeError maps a resolution failure to an HTTP status with a
// reason the client can show verbatim.
func writeGeocodeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, geocode.ErrUnavailable):
		writeError(w, http.StatusBadGateway, "city lookup is unavailable, try again")
	case errors.Is(err, geocode.ErrNotFound):
		writeError(w, http.StatusUnprocessableEntity, "no such place found")
	case errors.Is(err, geocode.ErrCountrySelected):
		writeError(w, http.StatusUnprocessableEntity, "that is a country, name a city")
	case errors.Is(err, geocode.ErrNotACity):
		writeError(w, http.StatusUnprocessableEntity, "that place is not a city")
	case errors.Is(err, geocode.ErrNoCloseMatch):
		writeError(w, http.StatusUnprocessableEntity, "no close match for that name")
	case errors.Is(err, geocode.ErrPopulationMissing):
		writeError(w, http.StatusUnprocessableEntity, "no population known for that city")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
