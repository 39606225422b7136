package ui

import "github.com/charmbracelet/lipgloss"

// Dashboard styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)

	HeaderStatsStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	ColumnHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HostNameStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// Status indicator styles
	StatusUpStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	StatusDownStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	StatusConnectingStyle = lipgloss.NewStyle().
				Foreground(ColorSecondary)

	ReasonStyle = lipgloss.NewStyle().
			Foreground(ColorError)
)

// LoadStyle returns a style colored for a load average value.
func LoadStyle(load float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(LoadColor(load))
}
