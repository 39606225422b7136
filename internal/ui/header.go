package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/fleettop/internal/monitor"
)

// renderHeader renders the title line: host counters on the left and the
// frame time on the right.
func renderHeader(snap monitor.Snapshot, width int) string {
	sep := HeaderStatsStyle.Render(" | ")

	left := TitleStyle.Render("fleettop") + "  " +
		HeaderStatsStyle.Render(fmt.Sprintf("%d hosts", len(snap.Rows))) + sep +
		StatusUpStyle.Render(fmt.Sprintf("%d up", snap.Up)) + sep +
		StatusDownStyle.Render(fmt.Sprintf("%d down", snap.Down)) + sep +
		StatusConnectingStyle.Render(fmt.Sprintf("%d connecting", snap.Connecting))

	if snap.Time.IsZero() {
		return left
	}

	right := MutedStyle.Render(snap.Time.Format("15:04:05"))
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 2 {
		gap = 2
	}
	return left + strings.Repeat(" ", gap) + right
}
