// package services defines the Catalog interface for music providers and the
// authorization URL builder for the browser-side OAuth flow
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/shared"
	"golang.org/x/oauth2"
)

// Catalog defines track search and playlist listing for a music source.
// Implemented by [SpotifyService] (live provider) and [MockCatalog] (built-in
// fallback used when no token is present).
type Catalog interface {
	// SearchTracks searches for tracks matching the query, returning at most
	// limit normalized songs. A failed fetch is not fatal to the request
	// flow; callers treat it as "no results".
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error)

	// Playlists lists the authenticated user's playlists, at most limit.
	Playlists(ctx context.Context, limit int) ([]Playlist, error)

	// Name returns the catalog's display name (e.g. "Spotify", "Mock").
	Name() string
}

// OAuthService extends Catalog for providers using OAuth2 authorization.
type OAuthService interface {
	Catalog

	// Authenticate performs OAuth authentication. Expects either an
	// "access_token" or an "auth_code" in credentials.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// OAuthenticate installs an already-exchanged token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error

	// GetAuthURL returns the provider authorization URL for user login.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for callback handling.
	GetOAuthConfig() *oauth2.Config
}

// Playlist is a normalized playlist summary from any catalog.
type Playlist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

// DefaultScopes are the read-only scopes requested for customer catalog access.
var DefaultScopes = []string{
	"playlist-read-private",
	"playlist-read-collaborative",
	"user-library-read",
	"user-read-private",
}

// AuthorizationURL builds the provider authorization redirect URL from public
// client configuration only; no secret-bearing config is accepted.
//
// When withState is true a cryptographically random anti-forgery token is
// generated and embedded as the state parameter; the token is returned to the
// caller, which holds it for exactly one authorization attempt. Fails with
// [shared.ErrMissingCredentials] when the client id or redirect URI is unset
// rather than emitting a malformed URL.
func AuthorizationURL(cfg shared.SpotifyClientConfig, scopes []string, withState bool) (authURL string, state string, err error) {
	if cfg.ClientID == "" {
		return "", "", fmt.Errorf("%w: public client id is not configured", shared.ErrMissingCredentials)
	}
	if cfg.RedirectURI == "" {
		return "", "", fmt.Errorf("%w: redirect URI is not configured", shared.ErrMissingCredentials)
	}

	if len(scopes) == 0 {
		scopes = DefaultScopes
	}

	params := url.Values{}
	params.Set("client_id", cfg.ClientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", cfg.RedirectURI)
	params.Set("scope", strings.Join(scopes, " "))

	if withState {
		state, err = shared.GenerateState()
		if err != nil {
			return "", "", err
		}
		params.Set("state", state)
	}

	return AuthEndpoint + "?" + params.Encode(), state, nil
}
