package handler

import (
	"sync"

	"ProfileStore_Service/internal/models"
)

// subscriberBuffer is how many updates a slow subscriber may lag behind
// before it is dropped.
const subscriberBuffer = 8

// Hub fans out saved profiles to WebSocket subscribers of the same storage key.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan models.UserState]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan models.UserState]struct{})}
}

// Subscribe returns a channel of updates for key and a func that releases it.
func (h *Hub) Subscribe(key string) (<-chan models.UserState, func()) {
	ch := make(chan models.UserState, subscriberBuffer)

	h.mu.Lock()
	if h.subs[key] == nil {
		h.subs[key] = make(map[chan models.UserState]struct{})
	}
	h.subs[key][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() { h.remove(key, ch) })
	}
}

func (h *Hub) Publish(key string, state models.UserState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[key] {
		select {
		case ch <- state:
		default:
			// full buffer, the reader is gone or stuck
			delete(h.subs[key], ch)
			close(ch)
		}
	}
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

func (h *Hub) remove(key string, ch chan models.UserState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[key][ch]; !ok {
		return
	}
	delete(h.subs[key], ch)
	close(ch)
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

func (h *Hub) Subscribers(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}
