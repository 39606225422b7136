package monitor

import "time"

// StatusStore maps each configured host to its last known status.
// It is owned by the main loop and is not safe for concurrent use.
type StatusStore struct {
	hosts  []string
	status map[string]HostStatus
}

// NewStatusStore creates a store with every host Connecting.
// Duplicate names are kept once, in first-seen order.
func NewStatusStore(hosts []string) *StatusStore {
	now := time.Now()
	s := &StatusStore{status: make(map[string]HostStatus, len(hosts))}
	for _, h := range hosts {
		if _, ok := s.status[h]; ok {
			continue
		}
		s.hosts = append(s.hosts, h)
		s.status[h] = Connecting(now)
	}
	return s
}

// Apply folds one event into the store and reports whether anything changed.
// Events for hosts the store wasn't created with are ignored.
func (s *StatusStore) Apply(ev Event) bool {
	hev, ok := ev.(HostEvent)
	if !ok {
		return false
	}
	prev, ok := s.status[hev.HostName()]
	if !ok {
		return false
	}

	var next HostStatus
	switch e := ev.(type) {
	case HostConnectingEvent:
		next = Connecting(e.Time)
	case HostConnectionErrorEvent:
		next = Down(e.Reason, e.Time)
	case HostSampleEvent:
		next = Up(e.Load, e.Time)
	case HostSampleErrorEvent:
		next = Down(e.Reason, e.Time)
	default:
		// HostConnectedEvent: the first sample reports the host as up.
		return false
	}

	if next.State == prev.State {
		next.Since = prev.Since
	}
	s.status[hev.HostName()] = next
	return true
}

// Get returns the status of host.
func (s *StatusStore) Get(host string) (HostStatus, bool) {
	st, ok := s.status[host]
	return st, ok
}

// Hosts returns the configured hosts in their original order.
func (s *StatusStore) Hosts() []string {
	return append([]string(nil), s.hosts...)
}

// Len returns the number of hosts.
func (s *StatusStore) Len() int {
	return len(s.hosts)
}

// Snapshot copies the current state for a renderer.
func (s *StatusStore) Snapshot() Snapshot {
	snap := Snapshot{
		Rows: make([]HostRow, 0, len(s.hosts)),
	}
	for _, h := range s.hosts {
		st := s.status[h]
		snap.Rows = append(snap.Rows, HostRow{Host: h, Status: st})
		switch st.State {
		case StateUp:
			snap.Up++
		case StateDown:
			snap.Down++
		default:
			snap.Connecting++
		}
	}
	return snap
}

// Snapshot is an immutable view of the store handed to a Renderer.
type Snapshot struct {
	Rows       []HostRow
	Up         int
	Down       int
	Connecting int
	Time       time.Time
}

// HostRow is one host in a Snapshot.
type HostRow struct {
	Host    string
	Status  HostStatus
	History []float64 // Recent 1-minute load averages, oldest first
}
