// Package tui provides the terminal seed history stage: a filterable list
// of played seeds from which a game can be replayed or a row deleted.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/feudal-seeds/internal/history"
)

// History stage layout constants
const (
	historyMinWidth  = 60
	historyChrome    = 9 // title, filter line, borders and help
	historyMinHeight = 5
)

// HistoryKeyMap defines the key bindings for the history stage.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Play   key.Binding
	Delete key.Binding
	Clear  key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Filter, k.Play, k.Delete, k.Clear, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Play, k.Delete, k.Clear},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("tab", "f"),
			key.WithHelp("tab/f", "filter"),
		),
		Play: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter", "play"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear history"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for the seed history stage.
type HistoryModel struct {
	store    *history.Store
	filter   history.Filter
	entries  []history.Entry // rows currently shown, in table order
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	selected *history.Entry
	done     bool
}

// NewHistoryModel creates the stage and loads the full history.
func NewHistoryModel(store *history.Store, width, height int) HistoryModel {
	h := help.New()
	h.Width = width

	m := HistoryModel{
		store:  store,
		filter: history.FilterAll,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.refresh()
	return m
}

// createTable creates a new table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Seed", Width: 20},
		{Title: "Map", Width: 8},
		{Title: "Density", Width: 8},
		{Title: "Bots", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Played", Width: 12},
	}

	// Give spare width to the seed column
	if spare := m.width - historyMinWidth - 20; spare > 0 {
		columns[0].Width += min(spare, 10)
	}

	height := m.height - historyChrome
	if height < historyMinHeight {
		height = historyMinHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// refresh reloads the entries for the current filter.
func (m *HistoryModel) refresh() {
	m.entries = m.store.Filter(m.filter)

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", e.Seed),
			e.MapSize.String(),
			e.Density.String(),
			e.BotIntelligence.String(),
			e.Outcome.String(),
			e.PlayedAt.Local().Format("Jan 02 15:04"),
		}
	}

	cursor := m.table.Cursor()
	m.table.SetRows(rows)
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	m.table.SetCursor(cursor)
}

// current returns the highlighted entry.
func (m HistoryModel) current() (history.Entry, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.entries) {
		return history.Entry{}, false
	}
	return m.entries[i], true
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history stage.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Filter):
			m.filter = m.filter.Next()
			m.table.GotoTop()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Play):
			if e, ok := m.current(); ok {
				m.selected = &e
				m.done = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if e, ok := m.current(); ok {
				m.store.Remove(e)
				m.refresh()
			}
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.store.Clear()
			m.refresh()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.refresh()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history stage.
func (m HistoryModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("SEED HISTORY"))
	b.WriteString("\n\n")

	filterStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	b.WriteString("Filter: ")
	b.WriteString(filterStyle.Render(m.filter.String()))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	if len(m.entries) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No seeds in history yet.")))
	} else {
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the entry chosen for replay, if any.
func (m HistoryModel) Selected() (history.Entry, bool) {
	if m.selected == nil {
		return history.Entry{}, false
	}
	return *m.selected, true
}

// RunHistoryStage shows the stage full-screen until the player picks a
// seed to play or leaves. It returns the picked entry, or nil.
func RunHistoryStage(store *history.Store, width, height int) (*history.Entry, error) {
	p := tea.NewProgram(NewHistoryModel(store, width, height), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("history stage: %w", err)
	}

	m, ok := final.(HistoryModel)
	if !ok {
		return nil, nil
	}
	if e, ok := m.Selected(); ok {
		return &e, nil
	}
	return nil, nil
}
