package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/encore/internal/models"
)

var _ list.Item = requestItem{}

// requestItem wraps [models.SongRequest] to implement [list.Item].
type requestItem struct {
	request models.SongRequest
}

func (i requestItem) FilterValue() string { return i.request.Song.Title }

func (i requestItem) Title() string {
	return fmt.Sprintf("%s - %s", i.request.Song.Artist, i.request.Song.Title)
}

func (i requestItem) Description() string {
	desc := fmt.Sprintf("%s tip • %s", i.request.TipAmount, i.request.Requester.Name)
	if i.request.Message != "" {
		desc = fmt.Sprintf("%s • %q", desc, i.request.Message)
	}
	return desc
}
