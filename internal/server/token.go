package server

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/services"
	"github.com/desertthunder/encore/internal/shared"
)

// TokenHandler is the server-side gateway for the OAuth2 authorization code
// exchange. Browsers hand it the code from the provider redirect; the handler
// attaches the client secret and forwards the exchange upstream so the secret
// never reaches client-side code.
//
// Authorization codes and tokens are never written to the log.
type TokenHandler struct {
	credentials shared.SpotifyServerConfig
	tokenURL    string
	client      *http.Client
	logger      *log.Logger
}

// NewTokenHandler creates a token gateway for the given server credentials.
func NewTokenHandler(credentials shared.SpotifyServerConfig, logger *log.Logger) *TokenHandler {
	return &TokenHandler{
		credentials: credentials,
		tokenURL:    services.TokenEndpoint,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// SetTokenURL overrides the upstream token endpoint. Intended for tests.
func (h *TokenHandler) SetTokenURL(tokenURL string) {
	h.tokenURL = tokenURL
}

// Routes returns the HTTP routes this handler serves.
func (h *TokenHandler) Routes() []string {
	return []string{"GET /api/spotify/token"}
}

// ServeHTTP exchanges an authorization code for tokens.
//
// Responds 400 when the code parameter is absent, 500 with a per-variable
// breakdown when server credentials are incomplete, and forwards the
// provider's status and body verbatim otherwise. Transport failures map to a
// generic 500 so upstream details don't leak.
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		respondWithError(w, http.StatusBadRequest, "Missing code")
		return
	}

	if missing := h.credentials.Missing(); len(missing) > 0 {
		h.logger.Error("token exchange refused: incomplete server credentials")
		respondWithJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   "Missing server env vars",
			"missing": missing,
		})
		return
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", h.credentials.RedirectURI)

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Token exchange failed")
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(h.credentials.ClientID, h.credentials.ClientSecret)

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Warn("token exchange transport failure", "err", err)
		respondWithError(w, http.StatusInternalServerError, "Token exchange failed")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Token exchange failed")
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		h.logger.Warn("token exchange rejected upstream", "status", resp.StatusCode)
	}

	// Provider responses, success or error, pass through unmodified.
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}
