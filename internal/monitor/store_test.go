package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusStore(t *testing.T) {
	s := NewStatusStore([]string{"b", "a", "b"})

	assert.Equal(t, []string{"b", "a"}, s.Hosts())
	assert.Equal(t, 2, s.Len())

	for _, h := range s.Hosts() {
		st, ok := s.Get(h)
		require.True(t, ok)
		assert.Equal(t, StateConnecting, st.State)
	}
}

func TestStatusStore_Apply(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sample := ParseLoad(loadavgSample)

	tests := []struct {
		name        string
		event       Event
		wantChanged bool
		wantState   State
		wantReason  string
		wantLoad    string
	}{
		{
			name:        "connecting",
			event:       HostConnectingEvent{Host: "a", Time: t0},
			wantChanged: true,
			wantState:   StateConnecting,
		},
		{
			name:        "connected leaves status alone",
			event:       HostConnectedEvent{Host: "a", Time: t0},
			wantChanged: false,
			wantState:   StateConnecting,
		},
		{
			name:        "connection error",
			event:       HostConnectionErrorEvent{Host: "a", Reason: "refused", Time: t0},
			wantChanged: true,
			wantState:   StateDown,
			wantReason:  "refused",
		},
		{
			name:        "sample",
			event:       HostSampleEvent{Host: "a", Load: sample, Time: t0},
			wantChanged: true,
			wantState:   StateUp,
			wantLoad:    loadavgSample,
		},
		{
			name:        "sample error",
			event:       HostSampleErrorEvent{Host: "a", Reason: "exit status 1", Time: t0},
			wantChanged: true,
			wantState:   StateDown,
			wantReason:  "exit status 1",
		},
		{
			name:        "tick",
			event:       TickEvent{Time: t0},
			wantChanged: false,
			wantState:   StateConnecting,
		},
		{
			name:        "input",
			event:       InputEvent{Msg: "x"},
			wantChanged: false,
			wantState:   StateConnecting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStatusStore([]string{"a"})

			assert.Equal(t, tt.wantChanged, s.Apply(tt.event))

			st, ok := s.Get("a")
			require.True(t, ok)
			assert.Equal(t, tt.wantState, st.State)
			assert.Equal(t, tt.wantReason, st.Reason)
			assert.Equal(t, tt.wantLoad, st.Load.Raw)
		})
	}
}

func TestStatusStore_UnknownHostIgnored(t *testing.T) {
	s := NewStatusStore([]string{"a", "b"})

	events := []Event{
		HostConnectingEvent{Host: "ghost"},
		HostConnectedEvent{Host: "ghost"},
		HostConnectionErrorEvent{Host: "ghost", Reason: "x"},
		HostSampleEvent{Host: "ghost", Load: ParseLoad("1 2 3")},
		HostSampleErrorEvent{Host: "ghost", Reason: "y"},
	}
	for _, ev := range events {
		assert.False(t, s.Apply(ev))
	}

	_, ok := s.Get("ghost")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, s.Hosts())
	assert.Len(t, s.Snapshot().Rows, 2)
}

func TestStatusStore_ConnectionErrorAlwaysDown(t *testing.T) {
	priors := map[string]Event{
		"from connecting": HostConnectingEvent{Host: "a"},
		"from up":         HostSampleEvent{Host: "a", Load: ParseLoad(loadavgSample)},
		"from down":       HostSampleErrorEvent{Host: "a", Reason: "old"},
	}

	for name, prior := range priors {
		t.Run(name, func(t *testing.T) {
			s := NewStatusStore([]string{"a"})
			s.Apply(prior)
			s.Apply(HostConnectionErrorEvent{Host: "a", Reason: "no route to host"})

			st, _ := s.Get("a")
			assert.Equal(t, StateDown, st.State)
			assert.Equal(t, "no route to host", st.Reason)
		})
	}
}

func TestStatusStore_LastWriteWins(t *testing.T) {
	s := NewStatusStore([]string{"a"})

	s.Apply(HostSampleEvent{Host: "a", Load: ParseLoad(loadavgSample)})
	s.Apply(HostSampleErrorEvent{Host: "a", Reason: "boom"})

	st, _ := s.Get("a")
	assert.Equal(t, StateDown, st.State)
	assert.Equal(t, "boom", st.Reason)
	assert.Empty(t, st.Load.Raw, "old sample is not merged into the new status")
	assert.False(t, st.Load.Parsed)
}

func TestStatusStore_SinceTracksStateChanges(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewStatusStore([]string{"a"})

	s.Apply(HostSampleEvent{Host: "a", Load: ParseLoad("1 1 1"), Time: t0})
	s.Apply(HostSampleEvent{Host: "a", Load: ParseLoad("2 2 2"), Time: t0.Add(time.Second)})

	st, _ := s.Get("a")
	assert.Equal(t, t0, st.Since, "Since keeps the time the host went up")
	assert.Equal(t, t0.Add(time.Second), st.Updated)
	assert.Equal(t, "2 2 2", st.Load.Raw)

	s.Apply(HostSampleErrorEvent{Host: "a", Reason: "x", Time: t0.Add(2 * time.Second)})
	st, _ = s.Get("a")
	assert.Equal(t, t0.Add(2*time.Second), st.Since)
}

func TestStatusStore_Snapshot(t *testing.T) {
	s := NewStatusStore([]string{"a", "b", "c"})
	s.Apply(HostSampleEvent{Host: "a", Load: ParseLoad(loadavgSample)})
	s.Apply(HostConnectionErrorEvent{Host: "b", Reason: "refused"})

	snap := s.Snapshot()
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, "a", snap.Rows[0].Host)
	assert.Equal(t, "b", snap.Rows[1].Host)
	assert.Equal(t, "c", snap.Rows[2].Host)
	assert.Equal(t, 1, snap.Up)
	assert.Equal(t, 1, snap.Down)
	assert.Equal(t, 1, snap.Connecting)

	// Later changes don't leak into an earlier snapshot
	s.Apply(HostSampleErrorEvent{Host: "a", Reason: "x"})
	assert.Equal(t, StateUp, snap.Rows[0].Status.State)
}

func TestParseLoadStatus(t *testing.T) {
	load := ParseLoad(loadavgSample)
	assert.True(t, load.Parsed)
	assert.Equal(t, loadavgSample, load.Raw)
	assert.InDelta(t, 0.42, load.Avg[0], 0.0001)
	assert.Equal(t, 203, load.Total)

	opaque := ParseLoad("not a load line")
	assert.False(t, opaque.Parsed)
	assert.Equal(t, "not a load line", opaque.Raw)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "connecting", StateConnecting.String())
	assert.Equal(t, "up", StateUp.String())
	assert.Equal(t, "down", StateDown.String())
	assert.Equal(t, "unknown", State(42).String())
}
