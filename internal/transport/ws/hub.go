package ws

import (
	"encoding/json"

	"github.com/tasktrail/backend/internal/logger"
)

// Hub manages all active WebSocket clients and routes events to them.
type Hub struct {
	// clients maps userID → client; one connection per user, a newer one
	// replaces the old.
	clients map[int64]*Client

	register   chan *Client
	unregister chan *Client
	send       chan *userMsg
}

type userMsg struct {
	userID int64
	data   []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[int64]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		send:       make(chan *userMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if old, ok := h.clients[client.userID]; ok {
				close(old.send)
				close(old.done)
			}
			h.clients[client.userID] = client
			logger.Debug("ws hub: user connected", "user_id", client.userID, "total", len(h.clients))

		case client := <-h.unregister:
			if current, ok := h.clients[client.userID]; ok && current == client {
				delete(h.clients, client.userID)
				close(client.send)
				close(client.done)
				logger.Debug("ws hub: user disconnected", "user_id", client.userID, "total", len(h.clients))
			}

		case msg := <-h.send:
			client, ok := h.clients[msg.userID]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, msg.userID)
				close(client.send)
				close(client.done)
			}
		}
	}
}

// SendToUser delivers an event to a specific user if connected.
func (h *Hub) SendToUser(userID int64, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("ws hub: marshal error", "error", err)
		return
	}
	h.send <- &userMsg{userID: userID, data: data}
}
