package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/triangulate/api/internal/game"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Triangulate API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the city triangle game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	postGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	postGame.SetSummary("Create game")
	postGame.SetDescription("Creates a game and claims seat 1. With auto set, the server picks the three triangle cities for the requested difficulty.")
	postGame.AddReqStructure(CreateGameRequest{})
	postGame.AddRespStructure(CreateGameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	_ = r.AddOperation(postGame)

	// POST /api/games/{game}/join
	postJoin, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/join")
	postJoin.SetSummary("Join game")
	postJoin.SetDescription("Claims the lowest free seat. Returns the private claim key for that seat.")
	postJoin.AddRespStructure(JoinGameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	postJoin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJoin)

	// GET /api/games/{game}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/state")
	getState.SetSummary("Game state")
	getState.SetDescription("Returns the current snapshot. Scores and verdicts stay hidden until the game finishes. Pass since=<version> to get 304 when nothing changed.")
	getState.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNotModified))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getState)

	// POST /api/games/{game}/vertex
	postVertex, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/vertex")
	postVertex.SetSummary("Add triangle vertex")
	postVertex.SetDescription("Resolves a city name and accepts it as the next triangle vertex. Requires Bearer claim key.")
	postVertex.AddReqStructure(CityRequest{})
	postVertex.AddRespStructure(VertexResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postVertex.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postVertex.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postVertex.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(postVertex)

	// POST /api/games/{game}/submit
	postSubmit, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/submit")
	postSubmit.SetSummary("Submit city")
	postSubmit.SetDescription("Resolves a city name and scores it against the triangle. The verdict is not revealed. Requires Bearer claim key.")
	postSubmit.AddReqStructure(CityRequest{})
	postSubmit.AddRespStructure(SubmitResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postSubmit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	_ = r.AddOperation(postSubmit)

	// POST /api/games/{game}/name
	postName, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/name")
	postName.SetSummary("Set player name")
	postName.SetDescription("Records a display name during name entry. The last name finishes the game and publishes the final standings. Requires Bearer claim key.")
	postName.AddReqStructure(NameRequest{})
	postName.AddRespStructure(game.Snapshot{}, openapi.WithHTTPStatus(http.StatusOK))
	postName.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	postName.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postName)

	// GET /api/games/{game}/edges
	getEdges, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/edges")
	getEdges.SetSummary("Triangle edges")
	getEdges.SetDescription("Returns the densified great-circle edge paths for map drawing, with longitudes unwrapped across the antimeridian.")
	getEdges.AddRespStructure(EdgesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getEdges.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	getEdges.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getEdges)

	// GET /api/games/{game}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of accepted game mutations.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws/games/{game}
	getWatch, _ := r.NewOperationContext(http.MethodGet, "/ws/games/{game}")
	getWatch.SetSummary("WebSocket watch")
	getWatch.SetDescription("Upgrades to a WebSocket streaming the same events as the SSE endpoint.")
	getWatch.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWatch)

	// DELETE /api/games/{game}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{game}")
	deleteGame.SetSummary("Delete game")
	deleteGame.SetDescription("Destroys the game. Creator only; requires Bearer claim key of seat 1.")
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	_ = r.AddOperation(deleteGame)

	// GET /api/leaderboard
	getBoard, _ := r.NewOperationContext(http.MethodGet, "/api/leaderboard")
	getBoard.SetSummary("Leaderboard")
	getBoard.SetDescription("Finished game results, best efficiency first.")
	getBoard.AddRespStructure([]LeaderboardEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getBoard)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// DELETE /api/admin/leaderboard/{id}
	deleteEntry, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/leaderboard/{id}")
	deleteEntry.SetSummary("Delete leaderboard entry")
	deleteEntry.SetDescription("Removes one leaderboard row. Requires admin_session cookie.")
	deleteEntry.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteEntry.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	deleteEntry.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(deleteEntry)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
