package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSearchDone MsgKind = iota
	MsgWatchlistChanged
)

// actionResult carries the controller state after an action.
type actionResult struct {
	snapshot views.Snapshot
	status   string
	err      error
}

// searchDoneMsg is the constructor for [MsgSearchDone]
func searchDoneMsg(snapshot views.Snapshot, query string, err error) Msg {
	return Msg{kind: MsgSearchDone, data: actionResult{snapshot: snapshot, status: query, err: err}}
}

// watchlistChangedMsg is the constructor for [MsgWatchlistChanged]
func watchlistChangedMsg(snapshot views.Snapshot, status string, err error) Msg {
	return Msg{kind: MsgWatchlistChanged, data: actionResult{snapshot: snapshot, status: status, err: err}}
}
