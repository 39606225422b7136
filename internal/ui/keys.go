package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap holds the dashboard key bindings. Quit is decided by the main loop
// (see IsQuit); Sort and Help only change the local view.
type KeyMap struct {
	Quit key.Binding
	Sort key.Binding
	Help key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Sort, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Sort, k.Help},
		{k.Quit},
	}
}

// IsQuit reports whether msg is a quit key press. Its signature matches
// monitor.KeyMatcher.
func (k KeyMap) IsQuit(msg tea.Msg) bool {
	km, ok := msg.(tea.KeyMsg)
	return ok && key.Matches(km, k.Quit)
}
