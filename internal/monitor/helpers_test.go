package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const loadavgSample = "0.42 0.38 0.35 1/203 9821\n"

// nextEvent reads one event or fails the test after a generous timeout.
func nextEvent(t *testing.T, agg *Aggregator) Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	ev, err := agg.Next(ctx)
	require.NoError(t, err, "timed out waiting for an event")
	return ev
}

// nextEvents reads n events.
func nextEvents(t *testing.T, agg *Aggregator, n int) []Event {
	t.Helper()
	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, nextEvent(t, agg))
	}
	return events
}

// recordingRenderer keeps every snapshot it is given.
type recordingRenderer struct {
	mu     sync.Mutex
	frames []Snapshot
}

func (r *recordingRenderer) Render(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, snap)
}

func (r *recordingRenderer) Frames() []Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Snapshot(nil), r.frames...)
}

func (r *recordingRenderer) Last() (Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return Snapshot{}, false
	}
	return r.frames[len(r.frames)-1], true
}

func rowFor(snap Snapshot, host string) (HostRow, bool) {
	for _, row := range snap.Rows {
		if row.Host == host {
			return row, true
		}
	}
	return HostRow{}, false
}
