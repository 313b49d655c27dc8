// File: /realtime/hub.go
package realtime

import (
	"log"
	"sync"
)

// Event types pushed to connected users.
const (
	EventFollow        = "follow"
	EventFriendRequest = "friend-request"
	EventFriendAccept  = "friend-accept"
)

// Event is the payload delivered over a notification connection.
type Event struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Conn is the write side of a live notification connection. A gorilla
// websocket connection satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type entry struct {
	conn       Conn
	generation uint64
}

// Hub maps a user id to at most one live connection. The latest connection
// wins: registering a user who already has an entry overwrites it. Entries
// are process-local and rebuilt from scratch as connections come and go;
// nothing survives a restart.
type Hub struct {
	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64
}

func NewHub() *Hub {
	return &Hub{entries: make(map[string]entry)}
}

// Register binds a user id to a connection, replacing any previous binding.
// It returns a generation token identifying this binding.
func (h *Hub) Register(userID string, conn Conn) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.generation++
	h.entries[userID] = entry{conn: conn, generation: h.generation}

	log.Printf("User %s connected (%d live connections)", userID, len(h.entries))
	return h.generation
}

// Unregister removes the user's entry only if it still belongs to the given
// generation. A stale disconnect (the user reconnected in the meantime)
// leaves the newer binding in place.
func (h *Hub) Unregister(userID string, generation uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	current, ok := h.entries[userID]
	if !ok || current.generation != generation {
		return
	}

	delete(h.entries, userID)
	log.Printf("User %s disconnected (%d live connections)", userID, len(h.entries))
}

// Notify pushes an event to the user's live connection. Best-effort: if the
// user is not connected, or the write fails, the event is dropped and the
// caller never sees an error.
func (h *Hub) Notify(userID, eventType, message string) {
	h.mu.RLock()
	current, ok := h.entries[userID]
	h.mu.RUnlock()

	if !ok {
		return
	}

	if err := current.conn.WriteJSON(Event{Type: eventType, Message: message}); err != nil {
		log.Printf("Failed to deliver %s event to user %s: %v", eventType, userID, err)
	}
}

// Connected reports whether the user has a live connection.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, ok := h.entries[userID]
	return ok
}
