package server

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// LeaderboardEntry is one finished seat on the public leaderboard.
type LeaderboardEntry struct {
	ID         int64   `json:"id"`
	CreatedAt  string  `json:"createdAt"`
	GameToken  string  `json:"game"`
	PlayerName string  `json:"playerName"`
	Score      int     `json:"score"`
	BestScore  int     `json:"bestScore"`
	Efficiency float64 `json:"efficiency"`
	Rounds     int     `json:"rounds"`
	Difficulty string  `json:"difficulty"`
}

// Store persists finished game results. Live game state never touches
// it; only final standings survive a restart.
type Store interface {
	AddLeaderboardEntries(ctx context.Context, entries []LeaderboardEntry) error
	ListLeaderboard(ctx context.Context) ([]LeaderboardEntry, error)
	DeleteLeaderboardEntry(ctx context.Context, id int64) error
}
