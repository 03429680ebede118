package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin ensures the bootstrap admin from the environment exists.
// Idempotent; a no-op when no admin email is configured or the admin
// already exists. The password hash is never updated after creation.
func SeedAdmin(ctx context.Context, logger *slog.Logger, db *sql.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM admins WHERE email = ?)
	`, email).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking for admin: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO admins (email, password_hash) VALUES (?, ?)
	`, email, string(hash))
	if err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	logger.Info("bootstrap admin created", "email", email)
	return nil
}
