package monitor

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Event is anything the main loop reacts to. The set of implementations is
// closed; see the types below.
type Event interface {
	event()
}

// HostEvent is an Event produced by a HostMonitor.
type HostEvent interface {
	Event
	HostName() string
	At() time.Time
}

// TickEvent is the fixed-rate redraw signal.
type TickEvent struct {
	Time time.Time
}

// InputEvent carries a terminal notification (key, mouse, resize) as
// delivered by the terminal layer. Keys are not interpreted here.
type InputEvent struct {
	Msg tea.Msg
}

// HostConnectingEvent reports that a connection attempt is starting.
type HostConnectingEvent struct {
	Host string
	Time time.Time
}

// HostConnectedEvent reports an authenticated session. It does not change
// the displayed status; the first sample does.
type HostConnectedEvent struct {
	Host string
	Time time.Time
}

// HostConnectionErrorEvent reports a failed connection attempt.
type HostConnectionErrorEvent struct {
	Host   string
	Reason string
	Time   time.Time
}

// HostSampleEvent carries the output of a successful sample.
type HostSampleEvent struct {
	Host string
	Load Load
	Time time.Time
}

// HostSampleErrorEvent reports a failed sample.
type HostSampleErrorEvent struct {
	Host   string
	Reason string
	Time   time.Time
}

func (TickEvent) event()                {}
func (InputEvent) event()               {}
func (HostConnectingEvent) event()      {}
func (HostConnectedEvent) event()       {}
func (HostConnectionErrorEvent) event() {}
func (HostSampleEvent) event()          {}
func (HostSampleErrorEvent) event()     {}

func (e HostConnectingEvent) HostName() string      { return e.Host }
func (e HostConnectedEvent) HostName() string       { return e.Host }
func (e HostConnectionErrorEvent) HostName() string { return e.Host }
func (e HostSampleEvent) HostName() string          { return e.Host }
func (e HostSampleErrorEvent) HostName() string     { return e.Host }

func (e HostConnectingEvent) At() time.Time      { return e.Time }
func (e HostConnectedEvent) At() time.Time       { return e.Time }
func (e HostConnectionErrorEvent) At() time.Time { return e.Time }
func (e HostSampleEvent) At() time.Time          { return e.Time }
func (e HostSampleErrorEvent) At() time.Time     { return e.Time }

func (e TickEvent) String() string  { return "tick" }
func (e InputEvent) String() string { return fmt.Sprintf("input %v", e.Msg) }

func (e HostConnectingEvent) String() string { return e.Host + ": connecting" }
func (e HostConnectedEvent) String() string  { return e.Host + ": connected" }
func (e HostConnectionErrorEvent) String() string {
	return e.Host + ": connection error: " + e.Reason
}
func (e HostSampleEvent) String() string      { return e.Host + ": sample " + e.Load.Raw }
func (e HostSampleErrorEvent) String() string { return e.Host + ": sample error: " + e.Reason }
