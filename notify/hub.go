package notify

import (
	"encoding/json"
	"log"
	"sync"

	"restaurant_manager/constants"

	"github.com/gofiber/contrib/websocket"
)

// Listener is the subset of *websocket.Conn the hub needs; tests substitute
// their own implementation.
type Listener interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Hub fans events out to the connected consoles of one restaurant, segmented
// into the kitchen, waiter and admin audiences. Delivery is best-effort: no
// acknowledgment, no retry, no persistence. A listener that errors on write is
// closed and dropped.
type Hub struct {
	mu        sync.Mutex
	listeners map[string]map[Listener]bool
}

func NewHub() *Hub {
	return &Hub{
		listeners: map[string]map[Listener]bool{
			constants.CHANNEL_KITCHEN: {},
			constants.CHANNEL_WAITERS: {},
			constants.CHANNEL_ADMIN:   {},
		},
	}
}

// ValidChannel reports whether channel names one of the three audiences.
func (h *Hub) ValidChannel(channel string) bool {
	_, ok := h.listeners[channel]
	return ok
}

func (h *Hub) Connect(channel string, l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.listeners[channel]; ok {
		set[l] = true
		log.Printf("websocket connected: %s", channel)
	}
}

func (h *Hub) Disconnect(channel string, l Listener) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.listeners[channel]; ok {
		if set[l] {
			delete(set, l)
			log.Printf("websocket disconnected: %s", channel)
		}
	}
}

// Publish serializes the event and writes it to every listener of the
// audience. It never returns an error to the caller.
func (h *Hub) Publish(channel string, event map[string]any) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("dropping unserializable event on %s: %v", channel, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.listeners[channel]
	if !ok {
		return
	}
	for l := range set {
		if err := l.WriteMessage(websocket.TextMessage, payload); err != nil {
			l.Close()
			delete(set, l)
		}
	}
	if tipo, ok := event["tipo"].(string); ok {
		log.Printf("event %s sent to %s (%d listeners)", tipo, channel, len(set))
	}
}

// Count returns the number of connected listeners of an audience.
func (h *Hub) Count(channel string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners[channel])
}
