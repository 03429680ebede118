package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/triangulate/api/internal/config"
	"github.com/triangulate/api/internal/database"
	"github.com/triangulate/api/internal/game"
	"github.com/triangulate/api/internal/gazetteer"
	"github.com/triangulate/api/internal/geocode"
	"github.com/triangulate/api/internal/migrations"
	"github.com/triangulate/api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- SQLite ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to sqlite", "path", cfg.DBPath)

	if err := server.SeedAdmin(ctx, logger, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	// --- Reference dataset ---
	gaz, err := gazetteer.Load()
	if err != nil {
		return fmt.Errorf("loading gazetteer: %w", err)
	}
	logger.Info("gazetteer loaded", "cities", gaz.Len())

	// --- Geocoder ---
	resolver := geocode.NewCache(geocode.NewClient(
		cfg.GeocoderURL, cfg.GeocoderUserAgent, cfg.GeocoderTimeout, gaz,
	))

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		DB:         db,
		Store:      server.NewSQLiteStore(db, cfg.LeaderboardCap),
		Games:      game.NewRegistry(),
		Resolver:   resolver,
		Gazetteer:  gaz,
		BestScoreN: cfg.BestScoreN,
		SPADir:     cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}
