package monitor

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exports what the main loop observes as Prometheus series.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HostState        *prometheus.GaugeVec
	HostLoad         *prometheus.GaugeVec
	Samples          *prometheus.CounterVec
	SampleErrors     *prometheus.CounterVec
	Connections      *prometheus.CounterVec
	ConnectionErrors *prometheus.CounterVec
	Events           *prometheus.CounterVec
}

var loadWindows = [3]string{"1m", "5m", "15m"}

// NewMetrics creates and registers the fleettop series on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.HostState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleettop_host_state",
			Help: "Current state of each host (1 for the active state, 0 otherwise)",
		},
		[]string{"host", "state"},
	)

	m.HostLoad = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fleettop_host_load",
			Help: "Last sampled load average per host",
		},
		[]string{"host", "window"},
	)

	m.Samples = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleettop_samples_total",
			Help: "Total number of successful load samples",
		},
		[]string{"host"},
	)

	m.SampleErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleettop_sample_errors_total",
			Help: "Total number of failed load samples",
		},
		[]string{"host"},
	)

	m.Connections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleettop_connections_total",
			Help: "Total number of established SSH sessions",
		},
		[]string{"host"},
	)

	m.ConnectionErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleettop_connection_errors_total",
			Help: "Total number of failed connection attempts",
		},
		[]string{"host"},
	)

	m.Events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleettop_events_total",
			Help: "Total number of events processed by the main loop",
		},
		[]string{"type"},
	)

	m.registry.MustRegister(
		m.HostState,
		m.HostLoad,
		m.Samples,
		m.SampleErrors,
		m.Connections,
		m.ConnectionErrors,
		m.Events,
	)

	return m
}

// WatchQueue exports the aggregator backlog as fleettop_event_queue_length.
func (m *Metrics) WatchQueue(a *Aggregator) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "fleettop_event_queue_length",
			Help: "Events waiting for the main loop",
		},
		func() float64 { return float64(a.Len()) },
	))
}

// Registry returns the registry the series live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Observe records ev. status is the host's status after ev was applied.
func (m *Metrics) Observe(ev Event, status HostStatus) {
	if m == nil {
		return
	}

	switch e := ev.(type) {
	case TickEvent:
		m.Events.WithLabelValues("tick").Inc()
		return
	case InputEvent:
		m.Events.WithLabelValues("input").Inc()
		return
	case HostConnectingEvent:
		m.Events.WithLabelValues("connecting").Inc()
	case HostConnectedEvent:
		m.Events.WithLabelValues("connected").Inc()
		m.Connections.WithLabelValues(e.Host).Inc()
	case HostConnectionErrorEvent:
		m.Events.WithLabelValues("connection_error").Inc()
		m.ConnectionErrors.WithLabelValues(e.Host).Inc()
	case HostSampleEvent:
		m.Events.WithLabelValues("sample").Inc()
		m.Samples.WithLabelValues(e.Host).Inc()
		if e.Load.Parsed {
			for i, w := range loadWindows {
				m.HostLoad.WithLabelValues(e.Host, w).Set(e.Load.Avg[i])
			}
		}
	case HostSampleErrorEvent:
		m.Events.WithLabelValues("sample_error").Inc()
		m.SampleErrors.WithLabelValues(e.Host).Inc()
	}

	if hev, ok := ev.(HostEvent); ok {
		m.setState(hev.HostName(), status.State)
	}
}

func (m *Metrics) setState(host string, state State) {
	for _, s := range []State{StateConnecting, StateUp, StateDown} {
		v := 0.0
		if s == state {
			v = 1
		}
		m.HostState.WithLabelValues(host, s.String()).Set(v)
	}
}
