// Package game implements the triangle game rules: shared triangle
// definition, turn-based scoring, name entry and final results. All
// mutation goes through the accept operations on State; rejected input
// never changes anything.
package game

import (
	"errors"

	"github.com/triangulate/api/internal/sphere"
)

// Stage is the lifecycle of a game. Transitions only move forward:
// triangle → scoring → names → finished.
type Stage string

const (
	StageTriangle Stage = "triangle"
	StageScoring  Stage = "scoring"
	StageNames    Stage = "names"
	StageFinished Stage = "finished"
)

// Rejection and fault sentinels. None of them leave partial state.
var (
	ErrWrongStage       = errors.New("game: operation not valid in this stage")
	ErrNotYourTurn      = errors.New("game: not your turn")
	ErrInvalidSeat      = errors.New("game: invalid seat")
	ErrDuplicateCity    = errors.New("game: city already used in this game")
	ErrVertexCollision  = errors.New("game: city is a triangle vertex")
	ErrDegenerateVertex = errors.New("game: vertex would make the triangle degenerate")
	ErrEmptyName        = errors.New("game: player name is empty")
	ErrGameNotFound     = errors.New("game: not found")
	ErrGameFull         = errors.New("game: all seats are taken")
	ErrNoCandidates     = errors.New("game: could not resolve any triangle candidates")
)

// Config fixes the shape of a game at creation.
type Config struct {
	Players    int
	Rounds     int
	Difficulty sphere.Difficulty
}

const (
	maxPlayers = 8
	maxRounds  = 10
)

func (c Config) validate() error {
	if c.Players < 1 || c.Players > maxPlayers {
		return errors.New("game: players must be between 1 and 8")
	}
	if c.Rounds < 1 || c.Rounds > maxRounds {
		return errors.New("game: rounds must be between 1 and 10")
	}
	return nil
}

// City is a resolved city fed into the state machine: coordinates, a
// canonical display label, an optional endonym and a population
// (0 = unknown).
type City struct {
	Point      sphere.Point `json:"point"`
	Name       string       `json:"name"`
	LocalName  string       `json:"localName,omitempty"`
	Population int          `json:"population"`
}

// Submission is one accepted scoring entry. Immutable after creation.
type Submission struct {
	City
	Inside bool `json:"inside"`
	Player int  `json:"player"`
	Order  int  `json:"order"`
}
