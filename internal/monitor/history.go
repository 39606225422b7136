package monitor

import "sync"

// DefaultHistorySize is the default number of samples retained per host.
const DefaultHistorySize = 60

// History keeps recent load values per host in ring buffers for sparkline
// rendering. It is safe for concurrent use.
type History struct {
	mu    sync.RWMutex
	size  int
	hosts map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:  size,
		hosts: make(map[string]*ringBuffer),
	}
}

// Push records a value for host.
func (h *History) Push(host string, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	buf, ok := h.hosts[host]
	if !ok {
		buf = newRingBuffer(h.size)
		h.hosts[host] = buf
	}
	buf.push(value)
}

// Get returns up to count most recent values for host, oldest first.
func (h *History) Get(host string, count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.hosts[host]
	if !ok {
		return nil
	}
	return buf.getLast(count)
}

// All returns every retained value for host, oldest first.
func (h *History) All(host string) []float64 {
	return h.Get(host, h.size)
}

// Count returns the number of values stored for host.
func (h *History) Count(host string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	buf, ok := h.hosts[host]
	if !ok {
		return 0
	}
	return buf.count
}

// Size returns the per-host capacity.
func (h *History) Size() int {
	return h.size
}

// Clear removes all history for host.
func (h *History) Clear(host string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hosts, host)
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value is at head-1
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
