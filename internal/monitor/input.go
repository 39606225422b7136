package monitor

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is how often TickEvents are produced.
const DefaultTickRate = 250 * time.Millisecond

// InputSource turns terminal notifications and a fixed-rate clock into
// events. The terminal layer calls Feed; Run forwards to the sink.
type InputSource struct {
	sink EventSink
	tick time.Duration

	mu      sync.Mutex
	pending []tea.Msg
	wake    chan struct{}
}

// NewInputSource creates a source ticking every tick (DefaultTickRate if <= 0).
func NewInputSource(sink EventSink, tick time.Duration) *InputSource {
	if tick <= 0 {
		tick = DefaultTickRate
	}
	return &InputSource{
		sink: sink,
		tick: tick,
		wake: make(chan struct{}, 1),
	}
}

// Feed queues a terminal notification. It never blocks, so it is safe to
// call from the terminal layer's update loop.
func (s *InputSource) Feed(msg tea.Msg) {
	s.mu.Lock()
	s.pending = append(s.pending, msg)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run forwards fed notifications as InputEvents, in arrival order, and emits
// a TickEvent every tick. It returns when ctx ends or the sink closes.
func (s *InputSource) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.sink.Done():
			return
		case t := <-ticker.C:
			if s.sink.Send(TickEvent{Time: t}) != nil {
				return
			}
		case <-s.wake:
			for _, msg := range s.drain() {
				if s.sink.Send(InputEvent{Msg: msg}) != nil {
					return
				}
			}
		}
	}
}

func (s *InputSource) drain() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.pending
	s.pending = nil
	return msgs
}
