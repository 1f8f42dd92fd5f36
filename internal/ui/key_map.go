package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	search key.Binding
	focus  key.Binding
	blur   key.Binding
	add    key.Binding
	remove key.Binding
	toggle key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		search: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search")),
		focus:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "new search")),
		blur:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "results")),
		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "+ watchlist")),
		remove: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.search, k.focus, k.blur},
		{k.add, k.remove, k.toggle, k.quit},
	}
}
