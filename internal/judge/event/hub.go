package event

import (
	"context"
	"sync"

	"acrunner/pkg/utils/logger"

	"go.uber.org/zap"
)

const defaultBuffer = 64

// Hub fans events out to every subscriber.
type Hub struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]chan Event
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subscribers: make(map[int]chan Event)}
}

// Subscribe registers a buffered channel. The returned cancel func
// unregisters and closes it; calling it twice is safe.
func (h *Hub) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = ch
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber without blocking.
// A subscriber whose buffer is full misses the event.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subscribers {
		select {
		case ch <- ev:
		default:
			logger.Warn(context.Background(), "event dropped for slow subscriber",
				zap.Int("subscriber", id),
				zap.String("kind", string(ev.Kind)),
			)
		}
	}
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}
