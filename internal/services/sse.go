package services

import (
	"sync"
)

// ChangeEvent notifies subscribers that a table changed. Consumers are
// expected to refetch the whole affected list rather than patch caches.
type ChangeEvent struct {
	Table  string `json:"table"`  // resources, categories, projects, profiles, system_config
	Action string `json:"action"` // insert, update, delete
	ID     uint   `json:"id,omitempty"`
}

// ChangeHub manages SSE client connections and change-event broadcasting.
type ChangeHub struct {
	clients map[string]chan ChangeEvent
	mu      sync.RWMutex
}

// NewChangeHub creates a new hub instance.
func NewChangeHub() *ChangeHub {
	return &ChangeHub{
		clients: make(map[string]chan ChangeEvent),
	}
}

// Subscribe registers a new client and returns a channel for receiving events.
func (h *ChangeHub) Subscribe(clientID string) <-chan ChangeEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Buffered channel so a slow client cannot block publishers
	ch := make(chan ChangeEvent, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub.
func (h *ChangeHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients.
func (h *ChangeHub) Publish(event ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *ChangeHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var (
	globalChangeHub *ChangeHub
	changeHubOnce   sync.Once
)

// GetChangeHub returns the global change hub singleton.
func GetChangeHub() *ChangeHub {
	changeHubOnce.Do(func() {
		globalChangeHub = NewChangeHub()
	})
	return globalChangeHub
}

// PublishChange is a convenience wrapper used by services after mutations.
func PublishChange(table, action string, id uint) {
	GetChangeHub().Publish(ChangeEvent{Table: table, Action: action, ID: id})
}
