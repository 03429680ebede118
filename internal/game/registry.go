package game

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Seat identifies one claimed player slot.
type Seat struct {
	Game   string
	Player int
}

type entry struct {
	mu    sync.Mutex
	state *State
	// claim key per seat; empty means unclaimed. The claim key gates
	// who may act as that seat, distinct from the shareable game token.
	claims []string
}

// Registry owns all live games. Each game has its own lock so that
// concurrent requests to one game are linearized — at most one accepted
// mutation commits per game per request — without blocking other games.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*entry
	seats map[string]Seat // claim key -> seat
}

func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*entry),
		seats: make(map[string]Seat),
	}
}

// newToken returns a short opaque game token.
func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Create starts a game and claims seat 1 for the creator. It returns
// the shareable game token and the creator's private claim key.
func (r *Registry) Create(cfg Config) (token, claimKey string, err error) {
	st, err := New(cfg)
	if err != nil {
		return "", "", err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	token = newToken()
	for r.games[token] != nil {
		token = newToken()
	}
	claimKey = uuid.NewString()

	e := &entry{state: st, claims: make([]string, cfg.Players)}
	e.claims[0] = claimKey
	r.games[token] = e
	r.seats[claimKey] = Seat{Game: token, Player: 1}
	return token, claimKey, nil
}

// Join claims the lowest free seat of a game.
func (r *Registry) Join(token string) (player int, claimKey string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.games[token]
	if !ok {
		return 0, "", ErrGameNotFound
	}
	for i, c := range e.claims {
		if c == "" {
			claimKey = uuid.NewString()
			e.claims[i] = claimKey
			r.seats[claimKey] = Seat{Game: token, Player: i + 1}
			return i + 1, claimKey, nil
		}
	}
	return 0, "", ErrGameFull
}

// FromClaim resolves a claim key to its seat.
func (r *Registry) FromClaim(claimKey string) (Seat, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.seats[claimKey]
	return s, ok
}

// Do runs fn inside the game's critical section. All reads and writes
// of a State go through here; fn must not block on I/O while holding
// the section.
func (r *Registry) Do(token string, fn func(*State) error) error {
	r.mu.RLock()
	e, ok := r.games[token]
	r.mu.RUnlock()
	if !ok {
		return ErrGameNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.state)
}

// Snapshot returns the current client view of a game.
func (r *Registry) Snapshot(token string) (Snapshot, error) {
	var snap Snapshot
	err := r.Do(token, func(s *State) error {
		snap = s.Snapshot()
		return nil
	})
	return snap, err
}

// Delete destroys a game and forgets its claim keys.
func (r *Registry) Delete(token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.games[token]
	if !ok {
		return ErrGameNotFound
	}
	for _, c := range e.claims {
		if c != "" {
			delete(r.seats, c)
		}
	}
	delete(r.games, token)
	return nil
}
