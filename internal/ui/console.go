package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/encore/internal/models"
	"github.com/desertthunder/encore/internal/requests"
)

// ViewState represents the current view in the console.
type ViewState int

const (
	QueueView ViewState = iota
	AcceptedView
)

// transitionMsg reports the outcome of an accept/reject/played action.
type transitionMsg struct {
	request models.SongRequest
	err     error
}

// Model is the DJ console: a live view over one session's request book with
// keyboard transitions on the selected request.
type Model struct {
	view         ViewState
	book         *requests.Book
	dj           models.DJ
	queueList    list.Model
	acceptedList list.Model
	status       string
	width        int
	height       int
	help         help.Model
	keys         keyMap
	onTransition func(models.SongRequest) // optional write-through hook
}

// NewModel creates a console model over the given request book for a DJ.
// onTransition, when non-nil, is invoked after every successful status
// change so callers can persist it.
func NewModel(book *requests.Book, dj models.DJ, onTransition func(models.SongRequest)) *Model {
	m := &Model{
		view:         QueueView,
		book:         book,
		dj:           dj,
		help:         help.New(),
		keys:         newKeyMap(),
		onTransition: onTransition,
	}
	m.queueList = list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	m.queueList.Title = "Pending Requests"
	m.acceptedList = list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	m.acceptedList.Title = "Accepted Requests"
	m.reload()
	return m
}

// Init implements [tea.Model].
func (m *Model) Init() tea.Cmd {
	return nil
}

// reload rebuilds both lists from the book's current state.
func (m *Model) reload() {
	pending := m.book.Pending()
	items := make([]list.Item, len(pending))
	for i, req := range pending {
		items[i] = requestItem{request: req}
	}
	m.queueList.SetItems(items)

	accepted := m.book.Accepted()
	items = make([]list.Item, len(accepted))
	for i, req := range accepted {
		items[i] = requestItem{request: req}
	}
	m.acceptedList.SetItems(items)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.queueList.SetSize(msg.Width-4, msg.Height-8)
		m.acceptedList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case transitionMsg:
		if msg.err != nil {
			m.status = styles.err.Render(fmt.Sprintf("Error: %v", msg.err))
		} else {
			m.status = styles.ok.Render(fmt.Sprintf("%s → %s", msg.request.Song.Title, msg.request.Status))
			if m.onTransition != nil {
				m.onTransition(msg.request)
			}
		}
		m.reload()
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.tab):
		if m.view == QueueView {
			m.view = AcceptedView
		} else {
			m.view = QueueView
		}
		return m, nil

	case key.Matches(msg, m.keys.accept):
		if m.view == QueueView {
			return m, m.transition(m.selectedID(), m.book.Accept)
		}

	case key.Matches(msg, m.keys.reject):
		if m.view == QueueView {
			return m, m.transition(m.selectedID(), func(id string) (models.SongRequest, error) {
				req, _, err := m.book.Reject(id)
				return req, err
			})
		}

	case key.Matches(msg, m.keys.played):
		if m.view == AcceptedView {
			return m, m.transition(m.selectedID(), m.book.MarkPlayed)
		}
	}

	return m.updateLists(msg)
}

// selectedID returns the id of the highlighted request, or "".
func (m *Model) selectedID() string {
	active := &m.queueList
	if m.view == AcceptedView {
		active = &m.acceptedList
	}

	selected := active.SelectedItem()
	if selected == nil {
		return ""
	}
	if item, ok := selected.(requestItem); ok {
		return item.request.ID
	}
	return ""
}

func (m *Model) transition(id string, op func(string) (models.SongRequest, error)) tea.Cmd {
	if id == "" {
		return nil
	}
	return func() tea.Msg {
		req, err := op(id)
		return transitionMsg{request: req, err: err}
	}
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case QueueView:
		m.queueList, cmd = m.queueList.Update(msg)
	case AcceptedView:
		m.acceptedList, cmd = m.acceptedList.Update(msg)
	}
	return m, cmd
}

// View renders the console.
func (m *Model) View() string {
	header := styles.title.Render(fmt.Sprintf("%s — %s", m.dj.Name, m.dj.Club))
	earnings := styles.warn.Render(fmt.Sprintf("Earnings: %s", m.book.Earnings(m.dj.ID)))

	var body string
	var helpKeys []key.Binding
	switch m.view {
	case QueueView:
		body = m.queueList.View()
		helpKeys = []key.Binding{m.keys.accept, m.keys.reject, m.keys.tab, m.keys.quit}
	case AcceptedView:
		body = m.acceptedList.View()
		helpKeys = []key.Binding{m.keys.played, m.keys.tab, m.keys.quit}
	}

	helpView := m.help.ShortHelpView(helpKeys)

	out := fmt.Sprintf("%s\n%s\n\n%s", header, earnings, body)
	if m.status != "" {
		out += "\n" + m.status
	}
	return out + "\n\n" + helpView
}
