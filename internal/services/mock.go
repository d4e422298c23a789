package services

import (
	"context"
	"strings"

	"github.com/desertthunder/encore/internal/models"
)

// MockCatalog serves a small built-in track list for demos and for when the
// real provider is unreachable or unconfigured. Search is a case-insensitive
// substring match on title and artist.
type MockCatalog struct {
	songs []models.Song
}

// NewMockCatalog creates a catalog backed by the built-in demo tracks.
func NewMockCatalog() *MockCatalog {
	return &MockCatalog{songs: demoSongs()}
}

func (m *MockCatalog) Name() string {
	return "Mock"
}

func (m *MockCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error) {
	if limit <= 0 {
		limit = 10
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	results := make([]models.Song, 0, limit)
	for _, song := range m.songs {
		if needle == "" ||
			strings.Contains(strings.ToLower(song.Title), needle) ||
			strings.Contains(strings.ToLower(song.Artist), needle) {
			results = append(results, song)
		}
		if len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Playlists returns an empty list; the demo catalog has no playlists.
func (m *MockCatalog) Playlists(ctx context.Context, limit int) ([]Playlist, error) {
	return []Playlist{}, nil
}

func demoSongs() []models.Song {
	return []models.Song{
		{
			ID:            "mock-1",
			Title:         "Blinding Lights",
			Artist:        "The Weeknd",
			Album:         "After Hours",
			AlbumCoverURL: "https://i.scdn.co/image/ab67616d0000b2738863bc11d2aa12b54f5aeb36",
		},
		{
			ID:            "mock-2",
			Title:         "Don't Start Now",
			Artist:        "Dua Lipa",
			Album:         "Future Nostalgia",
			AlbumCoverURL: "https://i.scdn.co/image/ab67616d0000b2734bc66095f8a70bc4e6593f4f",
		},
		{
			ID:            "mock-3",
			Title:         "Levitating",
			Artist:        "Dua Lipa",
			Album:         "Future Nostalgia",
			AlbumCoverURL: "https://i.scdn.co/image/ab67616d0000b2734bc66095f8a70bc4e6593f4f",
		},
	}
}
