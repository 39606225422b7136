package monitor

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Send and Next once the Aggregator is closed.
// Producers treat it as the shutdown signal, not a failure.
var ErrClosed = errors.New("event aggregator closed")

// EventSink is the producer side of an Aggregator.
type EventSink interface {
	// Send enqueues ev without blocking. It returns ErrClosed after shutdown.
	Send(ev Event) error
	// Done is closed when the sink stops accepting events.
	Done() <-chan struct{}
}

// Aggregator merges events from any number of producers into one stream
// for a single consumer. The queue is unbounded so producers never block;
// events from one producer come out in the order that producer sent them.
type Aggregator struct {
	mu     sync.Mutex
	queue  []Event
	closed bool

	notify    chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewAggregator creates an open Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// Send implements EventSink.
func (a *Aggregator) Send(ev Event) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return ErrClosed
	}
	a.queue = append(a.queue, ev)
	a.mu.Unlock()

	select {
	case a.notify <- struct{}{}:
	default:
	}
	return nil
}

// Next blocks until an event is available and returns it. It returns
// ErrClosed once the Aggregator is closed, even if events were still queued,
// and ctx.Err() if ctx ends first.
func (a *Aggregator) Next(ctx context.Context) (Event, error) {
	for {
		a.mu.Lock()
		if a.closed {
			a.mu.Unlock()
			return nil, ErrClosed
		}
		if len(a.queue) > 0 {
			ev := a.queue[0]
			a.queue[0] = nil
			a.queue = a.queue[1:]
			a.mu.Unlock()
			return ev, nil
		}
		a.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-a.done:
			return nil, ErrClosed
		case <-a.notify:
		}
	}
}

// Close stops the Aggregator. Queued events are discarded. Safe to call
// more than once.
func (a *Aggregator) Close() {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		a.queue = nil
		a.mu.Unlock()
		close(a.done)
	})
}

// Done implements EventSink.
func (a *Aggregator) Done() <-chan struct{} {
	return a.done
}

// Len returns the number of queued events.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}
