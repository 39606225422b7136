// Package testing provides scripted SSH fakes for exercising code that
// depends on sshutil.Dialer without a network.
package testing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rileyhilliard/fleettop/pkg/sshutil"
)

// CommandResponse defines a canned response for a command.
type CommandResponse struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Error    error // Returned from Channel.Run instead of an exit status
}

// ErrNoRoute is returned when dialing a host the FakeDialer doesn't know.
var ErrNoRoute = errors.New("no route to host")

// FakeDialer hands out FakeSessions for the hosts registered on it.
type FakeDialer struct {
	mu    sync.Mutex
	hosts map[string]*FakeHost
}

// NewFakeDialer creates a dialer with no hosts. Dialing an unknown host fails
// with ErrNoRoute.
func NewFakeDialer() *FakeDialer {
	return &FakeDialer{hosts: make(map[string]*FakeHost)}
}

// Host returns the script for name, registering it on first use.
func (d *FakeDialer) Host(name string) *FakeHost {
	d.mu.Lock()
	defer d.mu.Unlock()

	h, ok := d.hosts[name]
	if !ok {
		h = &FakeHost{
			name:      name,
			responses: make(map[string][]CommandResponse),
		}
		d.hosts[name] = h
	}
	return h
}

// Dial implements sshutil.Dialer.
func (d *FakeDialer) Dial(ctx context.Context, host string) (sshutil.Session, error) {
	d.mu.Lock()
	h, ok := d.hosts[host]
	d.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("dial %s: %w", host, ErrNoRoute)
	}
	return h.dial(ctx)
}

// FakeHost scripts how one host behaves.
type FakeHost struct {
	name string

	mu          sync.Mutex
	dialErr     error
	failDials   int // Remaining dials that fail with dialErr; -1 means all
	dialDelay   time.Duration
	openErr     error
	responses   map[string][]CommandResponse
	dials       int
	commands    []string
	sessions    []*FakeSession
	closedCount int
}

// FailDials makes the next n dials fail with err. n < 0 fails every dial.
func (h *FakeHost) FailDials(n int, err error) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.failDials = n
	h.dialErr = err
	return h
}

// DialDelay makes every dial wait d (or until the context is done).
func (h *FakeHost) DialDelay(d time.Duration) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dialDelay = d
	return h
}

// RefuseChannels makes OpenChannel fail with err without dropping the session.
// Pass nil to accept channels again.
func (h *FakeHost) RefuseChannels(err error) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.openErr = err
	return h
}

// SetCommandResponse registers responses for cmd. They are returned in order;
// the last one repeats once the others are used up.
func (h *FakeHost) SetCommandResponse(cmd string, resp ...CommandResponse) *FakeHost {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.responses[cmd] = append([]CommandResponse(nil), resp...)
	return h
}

// Drop kills the current session. Later channel opens on it report a lost
// connection, as a real session does after the transport dies.
func (h *FakeHost) Drop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, s := range h.sessions {
		s.dropped = true
	}
}

// DialCount returns how many dials were attempted.
func (h *FakeHost) DialCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dials
}

// SessionCount returns how many sessions were handed out.
func (h *FakeHost) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// ClosedCount returns how many sessions were closed by their owner.
func (h *FakeHost) ClosedCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closedCount
}

// Commands returns every command run on this host, in order.
func (h *FakeHost) Commands() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.commands...)
}

func (h *FakeHost) dial(ctx context.Context) (sshutil.Session, error) {
	h.mu.Lock()
	delay := h.dialDelay
	h.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.dials++
	if h.failDials != 0 {
		if h.failDials > 0 {
			h.failDials--
		}
		return nil, h.dialErr
	}

	s := &FakeSession{host: h}
	h.sessions = append(h.sessions, s)
	return s, nil
}

func (h *FakeHost) respond(cmd string) CommandResponse {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.commands = append(h.commands, cmd)
	queue, ok := h.responses[cmd]
	if !ok || len(queue) == 0 {
		return CommandResponse{
			Stderr:   []byte(fmt.Sprintf("sh: %s: command not found\n", cmd)),
			ExitCode: 127,
		}
	}
	resp := queue[0]
	if len(queue) > 1 {
		h.responses[cmd] = queue[1:]
	}
	return resp
}

// FakeSession implements sshutil.Session.
type FakeSession struct {
	host    *FakeHost
	dropped bool // guarded by host.mu
	closed  bool // guarded by host.mu
}

// OpenChannel implements sshutil.Session.
func (s *FakeSession) OpenChannel() (sshutil.Channel, error) {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()

	if s.dropped || s.closed {
		return nil, &sshutil.ConnectionLostError{Host: s.host.name, Err: errors.New("EOF")}
	}
	if s.host.openErr != nil {
		return nil, s.host.openErr
	}
	return &FakeChannel{session: s}, nil
}

// Close implements sshutil.Session.
func (s *FakeSession) Close() error {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.host.closedCount++
	}
	return nil
}

// Closed reports whether Close was called.
func (s *FakeSession) Closed() bool {
	s.host.mu.Lock()
	defer s.host.mu.Unlock()
	return s.closed
}

// FakeChannel implements sshutil.Channel.
type FakeChannel struct {
	session *FakeSession
}

// Run implements sshutil.Channel.
func (c *FakeChannel) Run(cmd string) (int, []byte, []byte, error) {
	resp := c.session.host.respond(cmd)
	if resp.Error != nil {
		return -1, nil, nil, resp.Error
	}
	return resp.ExitCode, resp.Stdout, resp.Stderr, nil
}

// Close implements sshutil.Channel.
func (c *FakeChannel) Close() error {
	return nil
}

var (
	_ sshutil.Dialer  = (*FakeDialer)(nil)
	_ sshutil.Session = (*FakeSession)(nil)
	_ sshutil.Channel = (*FakeChannel)(nil)
)
