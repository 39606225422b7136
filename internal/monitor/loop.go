package monitor

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/fleettop/internal/logger"
)

// Renderer draws a frame from a snapshot. It is called from the main loop
// goroutine and should hand the snapshot off rather than block.
type Renderer interface {
	Render(snap Snapshot)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Snapshot)

// Render implements Renderer.
func (f RendererFunc) Render(snap Snapshot) { f(snap) }

// KeyMatcher reports whether a terminal notification is a quit request.
type KeyMatcher func(msg tea.Msg) bool

// Loop is the single consumer of the event stream. It is the only writer of
// Store and the only caller of Renderer.
type Loop struct {
	Events   *Aggregator
	Store    *StatusStore
	Renderer Renderer
	Quit     KeyMatcher

	// Optional.
	Metrics *Metrics
	History *History
	Log     logger.Logger
}

// Run processes events one at a time until a quit key arrives (returns nil),
// the aggregator is closed elsewhere (returns nil) or ctx ends (returns
// ctx.Err()). The aggregator is always closed on return so producers stop.
func (l *Loop) Run(ctx context.Context) error {
	log := l.Log
	if log == nil {
		log = logger.Noop()
	}
	defer l.Events.Close()

	l.render(time.Now())

	for {
		ev, err := l.Events.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}

		switch e := ev.(type) {
		case TickEvent:
			l.Metrics.Observe(ev, HostStatus{})
			l.render(e.Time)

		case InputEvent:
			l.Metrics.Observe(ev, HostStatus{})
			if l.Quit != nil && l.Quit(e.Msg) {
				log.Debug("quit requested")
				return nil
			}

		case HostEvent:
			host := e.HostName()
			if _, known := l.Store.Get(host); !known {
				log.Debug("ignoring event for unknown host %q", host)
				continue
			}

			changed := l.Store.Apply(ev)
			status, _ := l.Store.Get(host)

			if s, ok := ev.(HostSampleEvent); ok && s.Load.Parsed && l.History != nil {
				l.History.Push(host, s.Load.Avg[0])
			}
			l.Metrics.Observe(ev, status)

			if changed {
				l.render(e.At())
			}
		}
	}
}

func (l *Loop) render(at time.Time) {
	if l.Renderer == nil {
		return
	}
	snap := l.Store.Snapshot()
	snap.Time = at
	if l.History != nil {
		for i := range snap.Rows {
			snap.Rows[i].History = l.History.All(snap.Rows[i].Host)
		}
	}
	l.Renderer.Render(snap)
}
