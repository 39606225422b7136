package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames defines the custom animation frames (◐ ◓ ◑ ◒) shown next to
// hosts that are still connecting.
var SpinnerFrames = spinner.Spinner{
	Frames: []string{"◐", "◓", "◑", "◒"},
	FPS:    time.Second / 8,
}

// newConnectingSpinner returns the spinner model used for connecting rows.
// Only the frame is taken from it; Render applies the row style.
func newConnectingSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(SpinnerFrames),
		spinner.WithStyle(lipgloss.NewStyle()),
	)
}
