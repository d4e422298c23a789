package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"golang.org/x/oauth2"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Session     SessionConfig     `toml:"session"`
}

// CredentialsConfig contains Spotify credentials, split by visibility.
//
// Spotify holds the server-side secrets used by the token exchange gateway.
// SpotifyPublic holds the browser-safe values used to build authorization URLs.
// The two sets are deliberately disjoint: the client secret must never reach
// URL-building code.
type CredentialsConfig struct {
	Spotify       SpotifyServerConfig `toml:"spotify"`
	SpotifyPublic SpotifyClientConfig `toml:"spotify_public"`
}

// SpotifyServerConfig contains the server-held Spotify secrets and, after an
// authorization flow, the persisted token set.
type SpotifyServerConfig struct {
	ClientID     string    `toml:"client_id"`
	ClientSecret string    `toml:"client_secret"`
	RedirectURI  string    `toml:"redirect_uri"`
	AccessToken  string    `toml:"access_token,omitempty"`
	RefreshToken string    `toml:"refresh_token,omitempty"`
	Expiry       time.Time `toml:"expiry,omitempty"`
}

// SpotifyClientConfig contains only public values safe to expose to a browser.
type SpotifyClientConfig struct {
	ClientID    string `toml:"client_id"`
	RedirectURI string `toml:"redirect_uri"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string  `toml:"host"`
	Port           int     `toml:"port"`
	RateLimit      float64 `toml:"rate_limit"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

// SessionConfig seeds per-user session state.
type SessionConfig struct {
	UserID          string `toml:"user_id"`
	UserName        string `toml:"user_name"`
	UserAvatarURL   string `toml:"user_avatar_url"`
	StartingBalance int64  `toml:"starting_balance_cents"`
	RefundOnReject  bool   `toml:"refund_on_reject"`
}

// ApplyEnv overrides the server-held secrets from the process environment.
// Environment variables win over file values; they are read once at startup
// and immutable thereafter.
func (c *SpotifyServerConfig) ApplyEnv() {
	if v := os.Getenv("SPOTIFY_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_CLIENT_SECRET"); v != "" {
		c.ClientSecret = v
	}
	if v := os.Getenv("SPOTIFY_REDIRECT_URI"); v != "" {
		c.RedirectURI = v
	}
}

// ApplyEnv overrides the public client values from the process environment.
func (c *SpotifyClientConfig) ApplyEnv() {
	if v := os.Getenv("SPOTIFY_PUBLIC_CLIENT_ID"); v != "" {
		c.ClientID = v
	}
	if v := os.Getenv("SPOTIFY_PUBLIC_REDIRECT_URI"); v != "" {
		c.RedirectURI = v
	}
}

// Missing reports which of the three server-held secrets are absent.
// The map is empty when the gateway is fully configured.
func (c SpotifyServerConfig) Missing() map[string]bool {
	missing := map[string]bool{
		"CLIENT_ID":     c.ClientID == "",
		"CLIENT_SECRET": c.ClientSecret == "",
		"REDIRECT_URI":  c.RedirectURI == "",
	}
	for _, absent := range missing {
		if absent {
			return missing
		}
	}
	return map[string]bool{}
}

// Map returns credentials in the form the services package consumes.
func (c SpotifyServerConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     c.ClientID,
		"client_secret": c.ClientSecret,
		"redirect_uri":  c.RedirectURI,
	}
}

// Token returns the persisted OAuth token, or nil when no token is stored or
// the stored token has expired (expired tokens are treated as absent).
func (c SpotifyServerConfig) Token() *oauth2.Token {
	if c.AccessToken == "" {
		return nil
	}
	if !c.Expiry.IsZero() && time.Now().After(c.Expiry) && c.RefreshToken == "" {
		return nil
	}
	return &oauth2.Token{
		AccessToken:  c.AccessToken,
		RefreshToken: c.RefreshToken,
		Expiry:       c.Expiry,
		TokenType:    "Bearer",
	}
}

// Update stores a freshly exchanged token set.
func (c *SpotifyServerConfig) Update(token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidArgument)
	}
	c.AccessToken = token.AccessToken
	if token.RefreshToken != "" {
		c.RefreshToken = token.RefreshToken
	}
	c.Expiry = token.Expiry
	return nil
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
// Server secrets and public client values honor environment overrides.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.Credentials.Spotify.ApplyEnv()
	config.Credentials.SpotifyPublic.ApplyEnv()

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.Credentials.Spotify.ApplyEnv()
	config.Credentials.SpotifyPublic.ApplyEnv()
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes the configuration back to disk. Token material is written
// with owner-only permissions.
func SaveConfig(path string, config *Config) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
