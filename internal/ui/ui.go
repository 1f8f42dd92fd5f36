package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/views"
)

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	ctrl      *views.Controller
	width     int
	height    int
	input     textinput.Model
	results   list.Model
	spinner   spinner.Model
	snapshot  views.Snapshot
	searching int
	status    string
	err       error
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model driving ctrl.
func NewModel(ctx context.Context, ctrl *views.Controller) *Model {
	snap := ctrl.Snapshot()

	input := textinput.New()
	input.Placeholder = snap.Placeholder
	input.Prompt = "› "
	input.Focus()

	results := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	results.SetShowTitle(false)
	results.SetShowHelp(false)
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)
	results.DisableQuitKeybindings()

	m := &Model{
		ctx:     ctx,
		ctrl:    ctrl,
		input:   input,
		results: results,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.apply(snap)
	return m
}

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.results.SetSize(max(msg.Width-4, 10), max(msg.Height-10, 3))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.searching == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	res, ok := msg.data.(actionResult)
	if !ok {
		return m, nil
	}

	switch msg.kind {
	case MsgSearchDone:
		m.searching--
		if errors.Is(res.err, shared.ErrSuperseded) {
			return m, nil
		}
		m.err = res.err
		m.apply(res.snapshot)
		if res.err == nil {
			m.status = fmt.Sprintf("Results for %q", res.status)
			if len(res.snapshot.Results.Movies) > 0 {
				m.input.Blur()
			}
		} else {
			m.status = ""
		}

	case MsgWatchlistChanged:
		m.err = res.err
		m.status = res.status
		m.apply(res.snapshot)
	}
	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.toggle) {
		m.err = nil
		m.status = ""
		m.apply(m.ctrl.Toggle())
		if m.snapshot.Mode == views.WatchlistMode {
			m.input.Blur()
		}
		return m, nil
	}

	if m.input.Focused() {
		switch {
		case key.Matches(msg, m.keys.search):
			return m, m.search(m.input.Value())
		case key.Matches(msg, m.keys.blur):
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.focus):
		if m.snapshot.Mode == views.SearchMode {
			return m, m.input.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.add):
		if m.snapshot.Mode == views.SearchMode {
			return m, m.addSelected()
		}
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if m.snapshot.Mode == views.WatchlistMode {
			return m, m.removeSelected()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// apply copies a controller snapshot into the widgets.
func (m *Model) apply(snap views.Snapshot) {
	m.snapshot = snap
	m.input.Placeholder = snap.Placeholder
	m.results.SetItems(movieItems(snap.Results.Movies))
}

func (m *Model) search(title string) tea.Cmd {
	m.input.SetValue("")
	m.input.Placeholder = views.PlaceholderSearch
	m.err = nil
	m.searching++

	ctx, ctrl := m.ctx, m.ctrl
	run := func() tea.Msg {
		snap, err := ctrl.Search(ctx, title)
		return searchDoneMsg(snap, strings.TrimSpace(title), err)
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *Model) selected() (movieItem, bool) {
	item, ok := m.results.SelectedItem().(movieItem)
	return item, ok
}

func (m *Model) addSelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}

	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		snap, added, err := ctrl.Add(ctx, item.movie.IMDbID)
		status := fmt.Sprintf("Already in watchlist: %s", item.movie.Title)
		if added {
			status = fmt.Sprintf("Added: %s", item.movie.Title)
		}
		return watchlistChangedMsg(snap, status, err)
	}
}

func (m *Model) removeSelected() tea.Cmd {
	item, ok := m.selected()
	if !ok {
		return nil
	}

	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		snap, _, err := ctrl.Remove(ctx, item.movie.IMDbID)
		return watchlistChangedMsg(snap, fmt.Sprintf("Removed: %s", item.movie.Title), err)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.toggle.Render(m.snapshot.ToggleLabel))
	b.WriteString("\n\n")

	if !m.snapshot.SearchBarHidden() {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	} else {
		b.WriteString(styles.title.Render("Watchlist"))
		b.WriteString("\n")
	}

	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

func (m *Model) renderResults() string {
	r := m.snapshot.Results
	switch {
	case r.Intro:
		return styles.help.Render("🎞  Start exploring")
	case r.Notice != "":
		return styles.warn.Render(r.Notice)
	default:
		return m.results.View()
	}
}

func (m *Model) renderStatus() string {
	switch {
	case m.searching > 0:
		return fmt.Sprintf("%s Searching...", m.spinner.View())
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.status != "":
		return styles.ok.Render(m.status)
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	var bindings []key.Binding
	switch {
	case m.input.Focused():
		bindings = []key.Binding{m.keys.search, m.keys.blur, m.keys.toggle}
	case m.snapshot.Mode == views.WatchlistMode:
		bindings = []key.Binding{m.keys.up, m.keys.down, m.keys.remove, m.keys.toggle, m.keys.quit}
	default:
		bindings = []key.Binding{m.keys.up, m.keys.down, m.keys.add, m.keys.focus, m.keys.toggle, m.keys.quit}
	}
	return m.help.ShortHelpView(bindings)
}

// Run starts the TUI program and blocks until it exits.
func Run(ctx context.Context, ctrl *views.Controller) error {
	p := tea.NewProgram(NewModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
