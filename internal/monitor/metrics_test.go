package monitor

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe(HostSampleEvent{Host: "a"}, HostStatus{State: StateUp})
		m.WatchQueue(NewAggregator())
	})
}

func TestMetrics_StateIsOneHot(t *testing.T) {
	m := NewMetrics()

	m.Observe(HostConnectingEvent{Host: "a"}, HostStatus{State: StateConnecting})
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HostState.WithLabelValues("a", "connecting")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HostState.WithLabelValues("a", "up")))

	m.Observe(HostSampleEvent{Host: "a", Load: ParseLoad(loadavgSample)}, HostStatus{State: StateUp})
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HostState.WithLabelValues("a", "connecting")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HostState.WithLabelValues("a", "up")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.HostState.WithLabelValues("a", "down")))

	assert.InDelta(t, 0.42, testutil.ToFloat64(m.HostLoad.WithLabelValues("a", "1m")), 0.0001)
	assert.InDelta(t, 0.38, testutil.ToFloat64(m.HostLoad.WithLabelValues("a", "5m")), 0.0001)
	assert.InDelta(t, 0.35, testutil.ToFloat64(m.HostLoad.WithLabelValues("a", "15m")), 0.0001)
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.Observe(HostConnectedEvent{Host: "a"}, HostStatus{})
	m.Observe(HostConnectedEvent{Host: "a"}, HostStatus{})
	m.Observe(HostSampleErrorEvent{Host: "a", Reason: "x"}, HostStatus{State: StateDown})
	m.Observe(TickEvent{}, HostStatus{})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Connections.WithLabelValues("a")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SampleErrors.WithLabelValues("a")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("tick")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("connected")))
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	agg := NewAggregator()
	m.WatchQueue(agg)

	require.NoError(t, agg.Send(TickEvent{}))
	require.NoError(t, agg.Send(TickEvent{}))
	m.Observe(HostSampleEvent{Host: "web1", Load: ParseLoad(loadavgSample)}, HostStatus{State: StateUp})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `fleettop_host_state{host="web1",state="up"} 1`)
	assert.Contains(t, body, `fleettop_samples_total{host="web1"} 1`)
	assert.Contains(t, body, "fleettop_event_queue_length 2")
	assert.True(t, strings.Contains(body, "# HELP fleettop_host_load"))
}
