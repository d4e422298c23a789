package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/encore/internal/shared"
)

func TestLoginHandler(t *testing.T) {
	t.Run("returns authorization URL with fresh state", func(t *testing.T) {
		handler := NewLoginHandler(shared.SpotifyClientConfig{
			ClientID:    "public_client_id",
			RedirectURI: "http://localhost:3000/callback",
		}, shared.NewLogger(nil))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spotify/login", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		var payload struct {
			URL   string `json:"url"`
			State string `json:"state"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if !strings.Contains(payload.URL, "client_id=public_client_id") {
			t.Errorf("expected client id in URL, got %q", payload.URL)
		}
		if !strings.Contains(payload.URL, "state="+payload.State) {
			t.Error("expected the returned state to be embedded in the URL")
		}
		if strings.Contains(payload.URL, "secret") {
			t.Errorf("unexpected secret material in URL %q", payload.URL)
		}
		if len(payload.State) == 0 {
			t.Error("expected a non-empty state token")
		}
	})

	t.Run("unconfigured client yields 500", func(t *testing.T) {
		handler := NewLoginHandler(shared.SpotifyClientConfig{}, shared.NewLogger(nil))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/spotify/login", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("routes", func(t *testing.T) {
		handler := NewLoginHandler(shared.SpotifyClientConfig{}, nil)
		routes := handler.Routes()
		if len(routes) != 1 || routes[0] != "GET /api/spotify/login" {
			t.Errorf("unexpected routes %v", routes)
		}
	})
}
