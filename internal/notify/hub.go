package notify

import (
	"encoding/json"
	"sync"
)

// Client represents a single live connection for a profile. It's essentially a
// channel the SSE handler listens on.
type Client chan []byte

// Hub fans dispatched events out to every live connection of a profile.
type Hub struct {
	profiles map[uint]map[Client]bool
	mu       sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		profiles: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client for a profile.
func (h *Hub) Subscribe(profileID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.profiles[profileID]; !ok {
		h.profiles[profileID] = make(map[Client]bool)
	}
	h.profiles[profileID][client] = true
}

// Unsubscribe removes a client and closes its channel so the SSE handler stops.
func (h *Hub) Unsubscribe(profileID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.profiles[profileID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client)
			if len(clients) == 0 {
				delete(h.profiles, profileID)
			}
		}
	}
}

// Broadcast sends an event to every live client of its target profile.
func (h *Hub) Broadcast(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.profiles[event.TargetProfileID]
	if !ok {
		return
	}

	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	for client := range clients {
		// Non-blocking send so a slow client cannot stall the hub.
		select {
		case client <- messageBytes:
		default:
		}
	}
}
