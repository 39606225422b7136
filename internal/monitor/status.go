package monitor

import (
	"time"

	"github.com/rileyhilliard/fleettop/internal/monitor/parsers"
)

// State is the coarse status of a host.
type State int

const (
	StateConnecting State = iota // No result yet, or reconnecting
	StateUp                      // Last sample succeeded
	StateDown                    // Last connect or sample failed
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateUp:
		return "up"
	case StateDown:
		return "down"
	default:
		return "unknown"
	}
}

// Load is one successful sample. Raw is the command output as received;
// Avg and friends are only meaningful when Parsed is true.
type Load struct {
	Raw    string
	Parsed bool
	parsers.LoadAvg
}

// ParseLoad wraps raw command output, parsing it when the format is known.
func ParseLoad(raw string) Load {
	load := Load{Raw: raw}
	if avg, err := parsers.ParseLoad(raw); err == nil {
		load.LoadAvg = avg
		load.Parsed = true
	}
	return load
}

// HostStatus is the last known status of one host.
// Load is set only in StateUp, Reason only in StateDown.
type HostStatus struct {
	State  State
	Load   Load
	Reason string

	Since   time.Time // When State last changed
	Updated time.Time // When the status was last written
}

// Connecting returns the initial status.
func Connecting(at time.Time) HostStatus {
	return HostStatus{State: StateConnecting, Since: at, Updated: at}
}

// Up returns a status carrying a sample.
func Up(load Load, at time.Time) HostStatus {
	return HostStatus{State: StateUp, Load: load, Since: at, Updated: at}
}

// Down returns a status carrying a failure reason.
func Down(reason string, at time.Time) HostStatus {
	return HostStatus{State: StateDown, Reason: reason, Since: at, Updated: at}
}
