package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/encore/internal/services"
	"github.com/desertthunder/encore/internal/shared"
)

// LoginHandler serves the provider authorization URL to browser clients.
//
// Built from public client configuration only; the secret-bearing server
// config never reaches this handler. Each response carries a fresh state
// token for one authorization attempt.
type LoginHandler struct {
	public shared.SpotifyClientConfig
	logger *log.Logger
}

// NewLoginHandler creates the login URL handler.
func NewLoginHandler(public shared.SpotifyClientConfig, logger *log.Logger) *LoginHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LoginHandler{public: public, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *LoginHandler) Routes() []string {
	return []string{"GET /api/spotify/login"}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authURL, state, err := services.AuthorizationURL(h.public, services.DefaultScopes, true)
	if err != nil {
		h.logger.Warn("failed to build authorization URL", "err", err)
		respondWithError(w, http.StatusInternalServerError, "Login is not configured")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"url":   authURL,
		"state": state,
	})
}
