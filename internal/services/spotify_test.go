package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/desertthunder/encore/internal/shared"
	"golang.org/x/oauth2"
)

func newTestService(t *testing.T) *SpotifyService {
	t.Helper()

	svc, err := NewSpotifyService(map[string]string{
		"client_id":     "test-client",
		"client_secret": "test-secret",
		"redirect_uri":  "http://localhost:3000/callback",
	})
	if err != nil {
		t.Fatalf("NewSpotifyService failed: %v", err)
	}
	return svc
}

func TestNewSpotifyService(t *testing.T) {
	t.Run("requires client id", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_secret": "s"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("requires client secret", func(t *testing.T) {
		_, err := NewSpotifyService(map[string]string{"client_id": "c"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("defaults redirect uri", func(t *testing.T) {
		svc, err := NewSpotifyService(map[string]string{
			"client_id":     "c",
			"client_secret": "s",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if svc.config.RedirectURL != "http://localhost:3000/callback" {
			t.Errorf("unexpected redirect: %s", svc.config.RedirectURL)
		}
	})
}

func TestAuthorizationURL(t *testing.T) {
	t.Run("builds url with state", func(t *testing.T) {
		cfg := shared.SpotifyClientConfig{
			ClientID:    "public-client",
			RedirectURI: "http://localhost:3000/callback",
		}

		authURL, state, err := AuthorizationURL(cfg, DefaultScopes, true)
		if err != nil {
			t.Fatalf("AuthorizationURL failed: %v", err)
		}
		if len(state) != 32 {
			t.Errorf("expected 32-char state, got %d chars", len(state))
		}

		parsed, err := url.Parse(authURL)
		if err != nil {
			t.Fatalf("unparseable auth url: %v", err)
		}
		query := parsed.Query()
		if query.Get("client_id") != "public-client" {
			t.Errorf("client_id = %q", query.Get("client_id"))
		}
		if query.Get("response_type") != "code" {
			t.Errorf("response_type = %q", query.Get("response_type"))
		}
		if query.Get("state") != state {
			t.Errorf("state mismatch: %q vs %q", query.Get("state"), state)
		}
		if !strings.Contains(query.Get("scope"), "playlist-read-private") {
			t.Errorf("scope missing playlist-read-private: %q", query.Get("scope"))
		}
		if query.Get("client_secret") != "" {
			t.Error("client secret must never appear in the authorization URL")
		}
	})

	t.Run("fails without client id", func(t *testing.T) {
		_, _, err := AuthorizationURL(shared.SpotifyClientConfig{RedirectURI: "http://x"}, nil, false)
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}

func TestSearchTracks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/search" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("type") != "track" {
			t.Errorf("expected type=track, got %q", r.URL.Query().Get("type"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"tracks": {
				"items": [
					{
						"id": "track-1",
						"name": "One More Time",
						"artists": [{"id": "a1", "name": "Daft Punk"}],
						"album": {
							"id": "al1",
							"name": "Discovery",
							"images": [{"url": "https://img.test/large.jpg", "height": 640, "width": 640}]
						}
					},
					{
						"id": "track-2",
						"name": "Rich Flex",
						"artists": [{"id": "a2", "name": "Drake"}, {"id": "a3", "name": "21 Savage"}],
						"album": {"id": "al2", "name": "Her Loss", "images": []}
					}
				]
			}
		}`))
	}))
	defer server.Close()

	svc := newTestService(t)
	svc.SetBaseURL(server.URL)

	t.Run("requires authentication", func(t *testing.T) {
		_, err := svc.SearchTracks(context.Background(), "daft punk", 10)
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	if err := svc.OAuthenticate(context.Background(), &oauth2.Token{AccessToken: "test-token"}); err != nil {
		t.Fatalf("OAuthenticate failed: %v", err)
	}
	svc.httpClient = http.DefaultClient

	t.Run("normalizes tracks", func(t *testing.T) {
		songs, err := svc.SearchTracks(context.Background(), "daft punk", 10)
		if err != nil {
			t.Fatalf("SearchTracks failed: %v", err)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].Artist != "Daft Punk" {
			t.Errorf("artist = %q", songs[0].Artist)
		}
		if songs[0].AlbumCoverURL != "https://img.test/large.jpg" {
			t.Errorf("cover = %q", songs[0].AlbumCoverURL)
		}
		if songs[1].Artist != "Drake, 21 Savage" {
			t.Errorf("joined artist = %q", songs[1].Artist)
		}
		if songs[1].AlbumCoverURL != "" {
			t.Errorf("expected empty cover for imageless album, got %q", songs[1].AlbumCoverURL)
		}
	})

	t.Run("empty query returns empty result", func(t *testing.T) {
		songs, err := svc.SearchTracks(context.Background(), "   ", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected no songs, got %d", len(songs))
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := newTestService(t)
		expired.SetBaseURL(server.URL)
		if err := expired.OAuthenticate(context.Background(), &oauth2.Token{AccessToken: "stale"}); err != nil {
			t.Fatalf("OAuthenticate failed: %v", err)
		}
		expired.httpClient = http.DefaultClient

		_, err := expired.SearchTracks(context.Background(), "anything", 10)
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestPlaylists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/me/playlists" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": "pl-1", "name": "Friday Warmup", "images": [{"url": "https://img.test/pl.jpg"}]},
				{"id": "pl-2", "name": "Closers", "images": []}
			]
		}`))
	}))
	defer server.Close()

	svc := newTestService(t)
	svc.SetBaseURL(server.URL)
	if err := svc.OAuthenticate(context.Background(), &oauth2.Token{AccessToken: "test-token"}); err != nil {
		t.Fatalf("OAuthenticate failed: %v", err)
	}
	svc.httpClient = http.DefaultClient

	playlists, err := svc.Playlists(context.Background(), 20)
	if err != nil {
		t.Fatalf("Playlists failed: %v", err)
	}
	if len(playlists) != 2 {
		t.Fatalf("expected 2 playlists, got %d", len(playlists))
	}
	if playlists[0].ImageURL != "https://img.test/pl.jpg" {
		t.Errorf("image = %q", playlists[0].ImageURL)
	}
	if playlists[1].ImageURL != "" {
		t.Errorf("expected empty image, got %q", playlists[1].ImageURL)
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("access token shortcut", func(t *testing.T) {
		svc := newTestService(t)
		err := svc.Authenticate(context.Background(), map[string]string{"access_token": "tok"})
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if svc.token.AccessToken != "tok" {
			t.Errorf("token not installed")
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc := newTestService(t)
		err := svc.Authenticate(context.Background(), map[string]string{})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})
}
