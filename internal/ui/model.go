package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/fleettop/internal/monitor"
)

// Feeder receives terminal notifications. monitor.InputSource implements it.
type Feeder interface {
	Feed(msg tea.Msg)
}

// frameMsg delivers a snapshot from the main loop to the program.
type frameMsg monitor.Snapshot

// Model is the bubbletea model behind the dashboard. It does not own any
// host state: it forwards input to the main loop and draws whatever
// snapshot it was last handed.
type Model struct {
	input   Feeder
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	snap     monitor.Snapshot
	haveSnap bool
	width    int
	height   int
	sort     SortOrder
	showHelp bool
	quitting bool
}

// NewModel creates a dashboard model that forwards input to input.
func NewModel(input Feeder, keys KeyMap) Model {
	return Model{
		input:   input,
		keys:    keys,
		help:    help.New(),
		spinner: newConnectingSpinner(),
	}
}

// Init starts the connecting spinner.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.snap = monitor.Snapshot(msg)
		m.haveSnap = true

	case tea.KeyMsg:
		// Every key goes to the main loop, which decides when to quit
		m.input.Feed(msg)

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Sort):
			m.sort = m.sort.Next()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		}

	case tea.WindowSizeMsg:
		m.input.Feed(msg)
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.MouseMsg:
		m.input.Feed(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting || !m.haveSnap {
		return ""
	}
	return Render(m.snap, View{
		Width:   m.width,
		Height:  m.height,
		Sort:    m.sort,
		Spinner: m.spinner.View(),
		Footer:  m.help.View(m.keys),
		Legend:  m.showHelp,
	})
}
