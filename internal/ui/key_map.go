package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the DJ console.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	accept key.Binding
	reject key.Binding
	played key.Binding
	tab    key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		accept: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		reject: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reject")),
		played: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "mark played")),
		tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.accept, k.reject, k.played},
		{k.tab, k.quit},
	}
}
