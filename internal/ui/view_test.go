package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/fleettop/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 30, 5, 0, time.UTC)

func testSnapshot() monitor.Snapshot {
	web1 := upRow("web1", "0.42 0.38 0.35 1/203 9821\n")
	web1.History = []float64{0.1, 0.2, 0.42}

	db1 := downRow("db1", "ssh: connect to db1:22 failed\nsecond line")
	db1.Status.Since = testNow.Add(-5 * time.Second)

	return monitor.Snapshot{
		Rows:       []monitor.HostRow{web1, db1, connectingRow("cache1")},
		Up:         1,
		Down:       1,
		Connecting: 1,
		Time:       testNow,
	}
}

func TestRender_Rows(t *testing.T) {
	out := Render(testSnapshot(), View{Width: 120, Spinner: "◓"})

	assert.Contains(t, out, "fleettop  3 hosts | 1 up | 1 down | 1 connecting")
	assert.Contains(t, out, "12:30:05")
	assert.Contains(t, out, "HOST")
	assert.Contains(t, out, "LOAD 1m 5m 15m")

	lines := strings.Split(out, "\n")
	web1 := findLine(t, lines, "web1")
	assert.Contains(t, web1, SymbolUp)
	assert.Contains(t, web1, "up")
	assert.Contains(t, web1, "0.42  0.38  0.35")
	assert.Contains(t, web1, "1/203")
	assert.Contains(t, web1, "▂▄█")

	db1 := findLine(t, lines, "db1")
	assert.Contains(t, db1, SymbolDown)
	assert.Contains(t, db1, "down")
	assert.Contains(t, db1, "ssh: connect to db1:22 failed (5s)")
	assert.NotContains(t, out, "second line", "only the first reason line is shown")

	cache := findLine(t, lines, "cache1")
	assert.Contains(t, cache, "◓")
	assert.Contains(t, cache, "connecting")

	assert.Contains(t, lines[len(lines)-1], "sorted by name")
}

func TestRender_UnparsedSample(t *testing.T) {
	snap := monitor.Snapshot{
		Rows: []monitor.HostRow{upRow("mac1", "{ 1.2 }\n")},
		Up:   1,
	}
	out := Render(snap, View{Width: 80})
	assert.Contains(t, findLine(t, strings.Split(out, "\n"), "mac1"), "{ 1.2 }")
}

func TestRender_SortOrder(t *testing.T) {
	out := Render(testSnapshot(), View{Width: 120, Sort: SortByName})
	assert.Less(t, strings.Index(out, "cache1"), strings.Index(out, "db1"))
	assert.Less(t, strings.Index(out, "db1"), strings.Index(out, "web1"))

	out = Render(testSnapshot(), View{Width: 120, Sort: SortByStatus})
	assert.Less(t, strings.Index(out, "db1"), strings.Index(out, "cache1"))
	assert.Less(t, strings.Index(out, "cache1"), strings.Index(out, "web1"))
	assert.Contains(t, out, "sorted by status")
}

func TestRender_ClipsToWidth(t *testing.T) {
	out := Render(testSnapshot(), View{Width: 40})
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40, "line too wide: %q", line)
	}
}

func TestRender_FitsHeight(t *testing.T) {
	var rows []monitor.HostRow
	for i := 0; i < 10; i++ {
		rows = append(rows, connectingRow(fmt.Sprintf("node%02d", i)))
	}
	snap := monitor.Snapshot{Rows: rows, Connecting: 10}

	out := Render(snap, View{Width: 80, Height: 8})
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 8)
	assert.Contains(t, out, "node00")
	assert.Contains(t, out, "node02")
	assert.NotContains(t, out, "node03")
	assert.Contains(t, out, "… 7 more hosts")

	out = Render(snap, View{Width: 80})
	assert.Contains(t, out, "node09", "no height means no limit")
}

func TestRender_FooterAndLegend(t *testing.T) {
	out := Render(testSnapshot(), View{Width: 120, Footer: "q quit • s sort", Legend: true})
	lines := strings.Split(out, "\n")

	assert.Contains(t, lines[len(lines)-1], "q quit • s sort")
	assert.Contains(t, lines[len(lines)-2], "up")
	assert.Contains(t, lines[len(lines)-2], "connecting")
}

func TestRender_NoHosts(t *testing.T) {
	out := Render(monitor.Snapshot{}, View{})
	assert.Contains(t, out, "No hosts")
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "", formatAge(time.Time{}, testNow))
	assert.Equal(t, "", formatAge(testNow, time.Time{}))
	assert.Equal(t, "0s", formatAge(testNow, testNow))
	assert.Equal(t, "42s", formatAge(testNow, testNow.Add(-42*time.Second)))
	assert.Equal(t, "3m", formatAge(testNow, testNow.Add(-3*time.Minute-10*time.Second)))
	assert.Equal(t, "2h", formatAge(testNow, testNow.Add(-2*time.Hour)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "web1", truncate("web1", 10))
	assert.Equal(t, "very-lo…", truncate("very-long-hostname", 8))
}

func findLine(t *testing.T, lines []string, substr string) string {
	t.Helper()
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return l
		}
	}
	require.Failf(t, "line not found", "no line contains %q", substr)
	return ""
}
