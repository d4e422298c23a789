package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/encore/internal/shared"
)

func testCredentials() shared.SpotifyServerConfig {
	return shared.SpotifyServerConfig{
		ClientID:     "server-client",
		ClientSecret: "server-secret",
		RedirectURI:  "http://localhost:3000/callback",
	}
}

func newTokenRequest(code string) *http.Request {
	target := "/api/spotify/token"
	if code != "" {
		target += "?code=" + code
	}
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func TestTokenHandler(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("missing code", func(t *testing.T) {
		handler := NewTokenHandler(testCredentials(), logger)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newTokenRequest(""))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Missing code"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("missing server credentials", func(t *testing.T) {
		creds := testCredentials()
		creds.ClientSecret = ""
		handler := NewTokenHandler(creds, logger)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newTokenRequest("abc123"))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}

		var body struct {
			Error   string          `json:"error"`
			Missing map[string]bool `json:"missing"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unparseable body: %v", err)
		}
		if body.Error != "Missing server env vars" {
			t.Errorf("error = %q", body.Error)
		}
		if !body.Missing["CLIENT_SECRET"] {
			t.Errorf("expected CLIENT_SECRET flagged, got %v", body.Missing)
		}
		if body.Missing["CLIENT_ID"] {
			t.Errorf("CLIENT_ID should not be flagged, got %v", body.Missing)
		}
	})

	t.Run("successful exchange forwards provider body", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseForm(); err != nil {
				t.Fatalf("bad form: %v", err)
			}
			if r.PostForm.Get("grant_type") != "authorization_code" {
				t.Errorf("grant_type = %q", r.PostForm.Get("grant_type"))
			}
			if r.PostForm.Get("code") != "abc123" {
				t.Errorf("code = %q", r.PostForm.Get("code"))
			}
			if user, pass, ok := r.BasicAuth(); !ok || user != "server-client" || pass != "server-secret" {
				t.Error("expected basic auth with server credentials")
			}
			if r.PostForm.Get("client_secret") != "" {
				t.Error("secret must travel in the Authorization header, not the form")
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"AT","refresh_token":"RT","expires_in":3600}`))
		}))
		defer provider.Close()

		handler := NewTokenHandler(testCredentials(), logger)
		handler.SetTokenURL(provider.URL)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newTokenRequest("abc123"))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"access_token":"AT"`) {
			t.Errorf("provider body not forwarded: %s", rec.Body.String())
		}
	})

	t.Run("provider error forwarded verbatim", func(t *testing.T) {
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid authorization code"}`))
		}))
		defer provider.Close()

		handler := NewTokenHandler(testCredentials(), logger)
		handler.SetTokenURL(provider.URL)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newTokenRequest("stale-code"))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected provider 400 forwarded, got %d", rec.Code)
		}
		if body := rec.Body.String(); !strings.Contains(body, "invalid_grant") {
			t.Errorf("provider error body not forwarded: %s", body)
		}
	})

	t.Run("unreachable provider", func(t *testing.T) {
		handler := NewTokenHandler(testCredentials(), logger)
		handler.SetTokenURL("http://127.0.0.1:1")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newTokenRequest("abc123"))

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
		if body := strings.TrimSpace(rec.Body.String()); body != `{"error":"Token exchange failed"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})
}
