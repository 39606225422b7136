package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using ANSI color codes for terminal compatibility.
//   RED    -> ANSI 1
//   GREEN  -> ANSI 2
//   YELLOW -> ANSI 3
//   BLUE   -> ANSI 4
//   CYAN   -> ANSI 6
//   GRAY   -> ANSI 8 (bright black)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Load thresholds for the 1-minute average. Without knowing the core count
// these are rough: anything past LoadCritical is busy on most machines.
const (
	LoadWarning  = 2.0
	LoadCritical = 4.0
)

// LoadColor returns the color for a load average value.
//   - below LoadWarning: green
//   - LoadWarning to LoadCritical: yellow
//   - LoadCritical and above: red
func LoadColor(load float64) lipgloss.Color {
	switch {
	case load >= LoadCritical:
		return ColorError
	case load >= LoadWarning:
		return ColorWarning
	default:
		return ColorSuccess
	}
}
