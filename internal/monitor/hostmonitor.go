package monitor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rileyhilliard/fleettop/internal/errors"
	"github.com/rileyhilliard/fleettop/internal/logger"
	"github.com/rileyhilliard/fleettop/pkg/sshutil"
)

// Defaults for MonitorOptions.
const (
	DefaultCommand        = "cat /proc/loadavg"
	DefaultSampleInterval = time.Second
	DefaultRetryInterval  = time.Second
)

// MonitorOptions configures a HostMonitor. Zero values take the defaults.
type MonitorOptions struct {
	Command        string
	SampleInterval time.Duration
	RetryInterval  time.Duration
	Log            logger.Logger
}

func (o MonitorOptions) withDefaults(host string) MonitorOptions {
	if o.Command == "" {
		o.Command = DefaultCommand
	}
	if o.SampleInterval <= 0 {
		o.SampleInterval = DefaultSampleInterval
	}
	if o.RetryInterval <= 0 {
		o.RetryInterval = DefaultRetryInterval
	}
	if o.Log == nil {
		o.Log = logger.NewEnvLogger("[" + host + "]")
	}
	return o
}

// HostMonitor drives one host: connect, retry while unreachable, and sample
// the load command while connected. It owns its session exclusively and
// reports everything it observes as events.
type HostMonitor struct {
	host   string
	dialer sshutil.Dialer
	sink   EventSink
	opts   MonitorOptions
	log    logger.Logger

	session sshutil.Session
	now     func() time.Time
}

// NewHostMonitor creates a monitor for host. Nothing happens until Run.
func NewHostMonitor(host string, dialer sshutil.Dialer, sink EventSink, opts MonitorOptions) *HostMonitor {
	opts = opts.withDefaults(host)
	return &HostMonitor{
		host:   host,
		dialer: dialer,
		sink:   sink,
		opts:   opts,
		log:    opts.Log,
		now:    time.Now,
	}
}

// Host returns the host this monitor watches.
func (m *HostMonitor) Host() string {
	return m.host
}

// Run connects and samples until ctx is cancelled or the sink closes.
// It never returns an error: failures become events, and a closed sink
// means shutdown.
func (m *HostMonitor) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-m.sink.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	defer m.disconnect()

	if !m.emit(HostConnectingEvent{Host: m.host, Time: m.now()}) {
		return
	}

	attempt := 0
	reconnecting := false
	for {
		if m.session == nil {
			if reconnecting {
				if !m.emit(HostConnectingEvent{Host: m.host, Time: m.now()}) {
					return
				}
				reconnecting = false
			}

			attempt++
			if !m.connect(ctx, attempt) {
				if ctx.Err() != nil || !m.wait(ctx, m.opts.RetryInterval) {
					return
				}
				continue
			}
			attempt = 0
		}

		if !m.sample(ctx) {
			return
		}

		if m.session == nil {
			reconnecting = true
			if !m.wait(ctx, m.opts.RetryInterval) {
				return
			}
			continue
		}

		if !m.wait(ctx, m.opts.SampleInterval) {
			return
		}
	}
}

// connect dials once. It returns true when a session was established.
func (m *HostMonitor) connect(ctx context.Context, attempt int) bool {
	m.log.Debug("dial attempt %d", attempt)

	session, err := m.dialer.Dial(ctx, m.host)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		reason := errors.Summary(err)
		m.log.Debug("dial failed: %s", reason)
		if attempt == 1 {
			m.log.Warn("can't connect: %s", reason)
		}
		m.emit(HostConnectionErrorEvent{Host: m.host, Reason: reason, Time: m.now()})
		return false
	}

	m.session = session
	m.log.Info("connected")
	if !m.emit(HostConnectedEvent{Host: m.host, Time: m.now()}) {
		return false
	}
	return true
}

type runResult struct {
	code   int
	stdout []byte
	stderr []byte
	err    error
}

// sample runs the load command once on the current session and emits the
// outcome. A connection-level failure drops the session. It returns false
// when the monitor should stop.
func (m *HostMonitor) sample(ctx context.Context) bool {
	ch, err := m.session.OpenChannel()
	if err != nil {
		return m.sampleFailed(err)
	}

	done := make(chan runResult, 1)
	go func() {
		code, stdout, stderr, err := ch.Run(m.opts.Command)
		done <- runResult{code: code, stdout: stdout, stderr: stderr, err: err}
	}()

	var res runResult
	select {
	case <-ctx.Done():
		_ = ch.Close()
		return false
	case res = <-done:
		_ = ch.Close()
	}

	if res.err != nil {
		return m.sampleFailed(res.err)
	}

	if res.code != 0 {
		reason := strings.TrimSpace(string(res.stderr))
		if reason == "" {
			reason = fmt.Sprintf("exit status %d", res.code)
		}
		m.log.Debug("'%s' exited %d: %s", m.opts.Command, res.code, reason)
		return m.emit(HostSampleErrorEvent{Host: m.host, Reason: reason, Time: m.now()})
	}

	out := string(res.stdout)
	m.log.Debug("sample: %s", strings.TrimSpace(out))
	return m.emit(HostSampleEvent{Host: m.host, Load: ParseLoad(out), Time: m.now()})
}

func (m *HostMonitor) sampleFailed(err error) bool {
	reason := errors.Summary(err)
	if sshutil.IsConnectionError(err) {
		m.log.Info("connection lost: %s", reason)
		m.disconnect()
	} else {
		m.log.Debug("sample failed: %s", reason)
	}
	return m.emit(HostSampleErrorEvent{Host: m.host, Reason: reason, Time: m.now()})
}

// disconnect closes and forgets the session, if any.
func (m *HostMonitor) disconnect() {
	if m.session == nil {
		return
	}
	if err := m.session.Close(); err != nil {
		m.log.Debug("close: %v", err)
	}
	m.session = nil
}

// emit sends ev and reports whether the sink is still open.
func (m *HostMonitor) emit(ev Event) bool {
	if err := m.sink.Send(ev); err != nil {
		m.log.Debug("sink closed, stopping")
		return false
	}
	return true
}

// wait sleeps for d and reports false if ctx ended first.
func (m *HostMonitor) wait(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
