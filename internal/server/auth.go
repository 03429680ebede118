package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/triangulate/api/internal/game"
)

var errNoSeat = errors.New("no valid claim key")

// seatFromRequest resolves the Bearer claim key to a seat and checks
// it belongs to the game named in the URL. The claim key is private to
// one player; the game token in the path is shareable.
func seatFromRequest(r *http.Request, games *game.Registry) (game.Seat, error) {
	auth := r.Header.Get("Authorization")
	key, found := strings.CutPrefix(auth, "Bearer ")
	if !found || key == "" {
		return game.Seat{}, errNoSeat
	}

	seat, ok := games.FromClaim(key)
	if !ok {
		return game.Seat{}, errNoSeat
	}
	if seat.Game != chi.URLParam(r, "game") {
		return game.Seat{}, errNoSeat
	}
	return seat, nil
}
