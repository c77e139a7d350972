// handlers/events.go - Live per-user event feed over WebSocket
//
// Celebrations and reminders are pushed here as they happen; the mobile
// client renders them. Delivery is best-effort: a user with no open
// socket just misses the push and sees the state on next fetch.
package handlers

import (
	"log"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"finhabit/models"
)

// EventEnvelope wraps everything pushed over the feed.
type EventEnvelope struct {
	Type      string      `json:"type"` // celebration, reminder
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// EventHub fans events out to each user's open sockets.
type EventHub struct {
	mu    sync.Mutex
	conns map[uint]map[*websocket.Conn]bool
}

var eventHub = &EventHub{conns: make(map[uint]map[*websocket.Conn]bool)}

// GetEventHub returns the process-wide hub.
func GetEventHub() *EventHub {
	return eventHub
}

func (h *EventHub) register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]bool)
	}
	h.conns[userID][conn] = true
}

func (h *EventHub) unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[userID], conn)
	if len(h.conns[userID]) == 0 {
		delete(h.conns, userID)
	}
}

// Broadcast pushes one envelope to every open socket of a user.
func (h *EventHub) Broadcast(userID uint, envelope EventEnvelope) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		if err := conn.WriteJSON(envelope); err != nil {
			log.Printf("event feed: write to user %d failed: %v", userID, err)
			conn.Close()
			delete(h.conns[userID], conn)
		}
	}
}

// Notify implements services.NotificationSink so the reminder dispatcher
// can deliver straight to open clients.
func (h *EventHub) Notify(userID uint, reminder models.StreakReminder) {
	h.Broadcast(userID, EventEnvelope{Type: "reminder", Data: reminder, Timestamp: time.Now()})
}

// PushCelebrations sends celebration events to the user's feed.
func PushCelebrations(userID uint, celebrations []models.CelebrationEvent) {
	for _, c := range celebrations {
		eventHub.Broadcast(userID, EventEnvelope{Type: "celebration", Data: c, Timestamp: time.Now()})
	}
}

// EventsUpgrade gates the websocket route: only upgrade requests pass.
func EventsUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// EventsSocket holds a user's feed connection open until the client
// disconnects. Inbound messages are ignored except for closing the pipe.
var EventsSocket = websocket.New(func(conn *websocket.Conn) {
	userID, ok := conn.Locals("userId").(uint)
	if !ok {
		conn.Close()
		return
	}

	eventHub.register(userID, conn)
	defer eventHub.unregister(userID, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})
