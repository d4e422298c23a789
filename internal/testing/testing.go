// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/services"
	"golang.org/x/oauth2"
)

// MockOAuthService is a test double for [services.OAuthService]. Search
// results can be stubbed per test; everything else succeeds and does nothing.
type MockOAuthService struct {
	Songs     []models.Song
	SearchErr error
}

func (m *MockOAuthService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockOAuthService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	return nil
}

func (m *MockOAuthService) GetAuthURL(state string) string {
	return "https://auth.example.com/authorize?state=" + state
}

func (m *MockOAuthService) GetOAuthConfig() *oauth2.Config {
	return &oauth2.Config{}
}

func (m *MockOAuthService) SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error) {
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.Songs, nil
}

func (m *MockOAuthService) Playlists(ctx context.Context, limit int) ([]services.Playlist, error) {
	return []services.Playlist{}, nil
}

func (m *MockOAuthService) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
