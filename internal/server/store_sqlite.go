package server

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore is the Store backed by the application database. cap
// bounds the leaderboard size; the oldest rows are dropped first.
type SQLiteStore struct {
	db  *sql.DB
	cap int
}

func NewSQLiteStore(db *sql.DB, cap int) *SQLiteStore {
	return &SQLiteStore{db: db, cap: cap}
}

func (s *SQLiteStore) AddLeaderboardEntries(ctx context.Context, entries []LeaderboardEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, e := range entries {
		// A replayed finish for the same game and player overwrites
		// rather than duplicating.
		_, err := tx.ExecContext(ctx, `
			INSERT INTO leaderboard (game_token, player_name, score, best_score, efficiency, rounds, difficulty)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (game_token, player_name) DO UPDATE SET
				score = excluded.score,
				best_score = excluded.best_score,
				efficiency = excluded.efficiency
		`, e.GameToken, e.PlayerName, e.Score, e.BestScore, e.Efficiency, e.Rounds, e.Difficulty)
		if err != nil {
			return fmt.Errorf("inserting leaderboard entry: %w", err)
		}
	}

	if s.cap > 0 {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM leaderboard
			WHERE id NOT IN (SELECT id FROM leaderboard ORDER BY id DESC LIMIT ?)
		`, s.cap)
		if err != nil {
			return fmt.Errorf("trimming leaderboard: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListLeaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, game_token, player_name, score, best_score, efficiency, rounds, difficulty
		FROM leaderboard
		ORDER BY efficiency DESC, score DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []LeaderboardEntry{}
	for rows.Next() {
		var e LeaderboardEntry
		err := rows.Scan(&e.ID, &e.CreatedAt, &e.GameToken, &e.PlayerName,
			&e.Score, &e.BestScore, &e.Efficiency, &e.Rounds, &e.Difficulty)
		if err != nil {
			return nil, fmt.Errorf("scanning leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) DeleteLeaderboardEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leaderboard WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting leaderboard entry: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Store = (*SQLiteStore)(nil)
