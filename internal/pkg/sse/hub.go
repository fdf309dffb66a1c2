package sse

import (
	"sync"
)

// Event is one server-sent event.
type Event struct {
	Name string
	Data interface{}
}

// Hub fans events out to subscribers. A subscriber either follows one employee or,
// with an empty filter, everyone.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Event]string
	closed      bool
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]string),
	}
}

// Subscribe registers a subscriber and returns its channel and a cleanup function.
func (h *Hub) Subscribe(employeeID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = employeeID

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
	}
	return ch, cleanup
}

// Close ends every subscription. Later subscribers receive an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Publish delivers event to every subscriber whose filter matches employeeID.
func (h *Hub) Publish(employeeID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, filter := range h.subscribers {
		if filter != "" && filter != employeeID {
			continue
		}
		select {
		case ch <- event:
		default:
			// Slow subscriber, drop
		}
	}
}

func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
