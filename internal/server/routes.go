package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, d Deps) {
	broker := NewBroker()

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Triangulate API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, d.DB))

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", handleCreateGame(logger, d))

		r.Route("/{game}", func(r chi.Router) {
			r.Post("/join", handleJoinGame(d.Games, broker))
			r.Get("/state", handleGameState(d.Games))
			r.Get("/edges", handleGameEdges(d.Games))
			r.Get("/events", handleGameEvents(d.Games, broker))
			r.Post("/vertex", handleVertex(d, broker))
			r.Post("/submit", handleSubmit(d, broker))
			r.Post("/name", handlePlayerName(logger, d, broker))
			r.Delete("/", handleDeleteGame(d.Games, broker))
		})
	})

	r.Get("/ws/games/{game}", handleWatch(logger, d.Games, broker))

	r.Get("/api/leaderboard", handleLeaderboard(d.Store))

	r.Post("/api/admin/login", handleAdminLogin(d.DB))
	r.Post("/api/admin/logout", handleAdminLogout(d.DB))
	r.Get("/api/admin/me", handleAdminMe(d.DB))
	r.Delete("/api/admin/leaderboard/{id}", handleAdminDeleteEntry(d.DB, d.Store))

	if d.SPADir != "" {
		if info, err := os.Stat(d.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", d.SPADir)
			r.NotFound(handleSPA(d.SPADir))
		}
	}
}
