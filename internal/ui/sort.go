package ui

import (
	"sort"

	"github.com/rileyhilliard/fleettop/internal/monitor"
)

// SortOrder defines how hosts are sorted in the dashboard.
type SortOrder int

const (
	SortByName SortOrder = iota
	SortByLoad
	SortByStatus
)

// String returns a human-readable label for the sort order.
func (s SortOrder) String() string {
	switch s {
	case SortByLoad:
		return "load"
	case SortByStatus:
		return "status"
	default:
		return "name"
	}
}

// Next cycles to the next sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % 3)
}

// statusRank puts problems first when sorting by status.
var statusRank = map[monitor.State]int{
	monitor.StateDown:       0,
	monitor.StateConnecting: 1,
	monitor.StateUp:         2,
}

// sortRows returns a sorted copy of rows. Ties always fall back to the host
// name so the order is stable between frames.
func sortRows(rows []monitor.HostRow, order SortOrder) []monitor.HostRow {
	sorted := append([]monitor.HostRow(nil), rows...)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]

		switch order {
		case SortByLoad:
			// Highest load first; hosts without a parsed sample go last
			la, okA := load1(a)
			lb, okB := load1(b)
			if okA != okB {
				return okA
			}
			if okA && la != lb {
				return la > lb
			}

		case SortByStatus:
			ra, rb := statusRank[a.Status.State], statusRank[b.Status.State]
			if ra != rb {
				return ra < rb
			}
		}

		return a.Host < b.Host
	})

	return sorted
}

func load1(row monitor.HostRow) (float64, bool) {
	if row.Status.State != monitor.StateUp || !row.Status.Load.Parsed {
		return 0, false
	}
	return row.Status.Load.Avg[0], true
}
