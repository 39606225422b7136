package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/fleettop/internal/monitor"
)

// Column widths
const (
	minHostWidth   = 4
	maxHostWidth   = 32
	stateWidth     = 11
	loadWidth      = 17
	procsWidth     = 10
	sparklineWidth = 30

	// DefaultWidth is used until the terminal reports its size.
	DefaultWidth = 80
)

// View is the view-local state Render needs besides the snapshot.
type View struct {
	Width   int
	Height  int // 0 means unlimited
	Sort    SortOrder
	Spinner string // Current frame of the connecting spinner
	Footer  string // Key help line(s)
	Legend  bool   // Show the status symbol legend
}

// Render draws one dashboard frame. It has no side effects.
func Render(snap monitor.Snapshot, v View) string {
	width := v.Width
	if width <= 0 {
		width = DefaultWidth
	}

	var lines []string
	lines = append(lines, renderHeader(snap, width))

	if len(snap.Rows) == 0 {
		lines = append(lines, "", MutedStyle.Render("No hosts"))
	} else {
		hostWidth := hostColumnWidth(snap.Rows)
		lines = append(lines, renderColumnHeader(hostWidth))
		lines = append(lines, DividerStyle.Render(strings.Repeat("─", width)))

		rows := sortRows(snap.Rows, v.Sort)
		footerLines := 1 + strings.Count(v.Footer, "\n")
		if v.Legend {
			footerLines++
		}
		room := len(rows)
		if v.Height > 0 {
			room = v.Height - len(lines) - footerLines
		}

		shown := rows
		if room < len(rows) {
			shown = rows[:max(room-1, 0)]
		}
		for _, row := range shown {
			lines = append(lines, renderRow(row, snap.Time, hostWidth, width, v.Spinner))
		}
		if hidden := len(rows) - len(shown); hidden > 0 {
			lines = append(lines, MutedStyle.Render(fmt.Sprintf("… %d more hosts", hidden)))
		}
	}

	footer := FooterStyle.Render("sorted by " + v.Sort.String())
	if v.Footer != "" {
		footer = v.Footer + FooterStyle.Render("  •  ") + footer
	}
	if v.Legend {
		lines = append(lines, renderLegend(v.Spinner))
	}
	lines = append(lines, footer)

	clip := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		lines[i] = clip.Render(line)
	}
	return strings.Join(lines, "\n")
}

func hostColumnWidth(rows []monitor.HostRow) int {
	w := minHostWidth
	for _, row := range rows {
		if n := lipgloss.Width(row.Host); n > w {
			w = n
		}
	}
	if w > maxHostWidth {
		w = maxHostWidth
	}
	return w
}

func renderColumnHeader(hostWidth int) string {
	return ColumnHeaderStyle.Render(
		"  " + padRight("HOST", hostWidth+2) +
			padRight("STATE", stateWidth) +
			padRight("LOAD 1m 5m 15m", loadWidth+2) +
			padRight("PROCS", procsWidth) +
			"TREND")
}

// renderRow renders one host line. Up rows show the load triple, process
// counts and history; down rows show why; connecting rows show a spinner.
func renderRow(row monitor.HostRow, now time.Time, hostWidth, width int, spinner string) string {
	st := row.Status
	host := HostNameStyle.Render(padRight(truncate(row.Host, hostWidth), hostWidth+2))

	switch st.State {
	case monitor.StateUp:
		state := StatusUpStyle.Render(padRight(st.State.String(), stateWidth))
		prefix := StatusUpStyle.Render(SymbolUp) + " " + host + state

		if !st.Load.Parsed {
			// Unknown output format: show what the host said
			return prefix + firstLine(st.Load.Raw)
		}

		load := LoadStyle(st.Load.Avg[0]).Render(padRight(formatLoad(st.Load), loadWidth+2))
		procs := MutedStyle.Render(padRight(formatProcs(st.Load), procsWidth))

		line := prefix + load + procs
		if room := width - lipgloss.Width(line); room > 0 {
			line += RenderSparkline(row.History, min(room, sparklineWidth))
		}
		return line

	case monitor.StateDown:
		state := StatusDownStyle.Render(padRight(st.State.String(), stateWidth))
		reason := firstLine(st.Reason)
		if age := formatAge(now, st.Since); age != "" {
			reason += MutedStyle.Render(" (" + age + ")")
		}
		return StatusDownStyle.Render(SymbolDown) + " " + host + state + ReasonStyle.Render(reason)

	default:
		if spinner == "" {
			spinner = SymbolConnecting
		}
		state := StatusConnectingStyle.Render(padRight(st.State.String(), stateWidth))
		return StatusConnectingStyle.Render(spinner) + " " + host + state
	}
}

func renderLegend(spinner string) string {
	if spinner == "" {
		spinner = SymbolConnecting
	}
	return StatusUpStyle.Render(SymbolUp) + MutedStyle.Render(" up   ") +
		StatusDownStyle.Render(SymbolDown) + MutedStyle.Render(" down   ") +
		StatusConnectingStyle.Render(spinner) + MutedStyle.Render(" connecting")
}

func formatLoad(l monitor.Load) string {
	return fmt.Sprintf("%5.2f %5.2f %5.2f", l.Avg[0], l.Avg[1], l.Avg[2])
}

func formatProcs(l monitor.Load) string {
	if l.Total == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", l.Running, l.Total)
}

// formatAge renders how long ago since was, relative to now. Empty when
// either time is unknown.
func formatAge(now, since time.Time) string {
	if now.IsZero() || since.IsZero() || now.Before(since) {
		return ""
	}
	d := now.Sub(since)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	if width >= len(r) {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}
