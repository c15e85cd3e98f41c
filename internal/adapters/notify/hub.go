package notify

import (
	"storefx/internal/domain"
	"sync"

	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 8

// Hub broadcasts rate changes to live subscribers, one buffered channel each.
// A subscriber that stops draining its channel misses events instead of stalling the others.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]chan domain.RateChange
	closed bool
}

// Subscribe registers a listener. The returned cancel func is idempotent and closes the channel.
func (h *Hub) Subscribe() (<-chan domain.RateChange, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan domain.RateChange, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}

	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.unsubscribe(id) })
	}
}

func (h *Hub) unsubscribe(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

func (h *Hub) NotifyRateChanged(change domain.RateChange) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, ch := range h.subs {
		select {
		case ch <- change:
		default:
			logrus.WithField("subscriber", id).Warn("Rate change subscriber is slow, event dropped")
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription; later subscribers get an already closed channel.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan domain.RateChange)}
}
