package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/go-chi/chi/v5"
)

func adminRouter(t *testing.T) (*chi.Mux, Deps) {
	t.Helper()
	deps := testDeps(t)

	err := SeedAdmin(context.Background(), slog.Default(), deps.DB, "admin@example.com", "swordfish")
	if err != nil {
		t.Fatalf("seeding admin: %v", err)
	}

	r := chi.NewRouter()
	addRoutes(r, slog.Default(), deps)
	return r, deps
}

func adminLogin(t *testing.T, r http.Handler, email, password string) (*httptest.ResponseRecorder, *http.Cookie) {
	t.Helper()
	body, _ := json.Marshal(AdminLoginRequest{Email: email, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookieName && c.Value != "" {
			return w, c
		}
	}
	return w, nil
}

func TestAdminLogin(t *testing.T) {
	r, _ := adminRouter(t)

	w, cookie := adminLogin(t, r, "admin@example.com", "wrong")
	if w.Code != http.StatusUnauthorized || cookie != nil {
		t.Fatalf("wrong password: expected 401 without cookie, got %d", w.Code)
	}

	w, cookie = adminLogin(t, r, "nobody@example.com", "swordfish")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unknown admin: expected 401, got %d", w.Code)
	}

	w, cookie = adminLogin(t, r, "admin@example.com", "swordfish")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if cookie == nil {
		t.Fatal("login: expected a session cookie")
	}

	// The session authenticates /me.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	var me AdminMeResponse
	json.NewDecoder(w.Body).Decode(&me)
	if me.Email != "admin@example.com" {
		t.Errorf("me: email = %q", me.Email)
	}
}

func TestAdminLogout(t *testing.T) {
	r, _ := adminRouter(t)

	_, cookie := adminLogin(t, r, "admin@example.com", "swordfish")
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}

	// The old session no longer authenticates.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: expected 401, got %d", w.Code)
	}
}

func TestAdminDeleteLeaderboardEntry(t *testing.T) {
	r, deps := adminRouter(t)
	ctx := context.Background()

	err := deps.Store.AddLeaderboardEntries(ctx, []LeaderboardEntry{
		{GameToken: "abcd1234", PlayerName: "Ada", Score: 100, BestScore: 200, Efficiency: 0.5, Rounds: 3, Difficulty: "medium"},
	})
	if err != nil {
		t.Fatalf("seeding entry: %v", err)
	}
	entries, err := deps.Store.ListLeaderboard(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("listing entries: %v, %d entries", err, len(entries))
	}
	id := entries[0].ID

	// Without a session the delete is refused.
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/leaderboard/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no session: expected 401, got %d", w.Code)
	}

	_, cookie := adminLogin(t, r, "admin@example.com", "swordfish")
	if cookie == nil {
		t.Fatal("expected a session cookie")
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/leaderboard/999", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing entry: expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/admin/leaderboard/"+strconv.FormatInt(id, 10), nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	entries, _ = deps.Store.ListLeaderboard(ctx)
	if len(entries) != 0 {
		t.Errorf("expected an empty leaderboard, got %d entries", len(entries))
	}
}
