// internal/realtime/hub.go
package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Client is one live WebSocket connection. PartnerID is set when the
// connection is scoped to a single conversation; uuid.Nil means the client
// wants every message addressed to its user.
type Client struct {
	ID        string
	UserID    uuid.UUID
	PartnerID uuid.UUID
	Conn      *WebSocketConn
	Send      chan []byte
}

// WantsMessage reports whether a message between sender and receiver should
// be delivered on this connection. Guards a shared hub from leaking rows
// that belong to someone else's conversation.
func (c *Client) WantsMessage(senderID, receiverID uuid.UUID) bool {
	if c.UserID != senderID && c.UserID != receiverID {
		return false
	}
	if c.PartnerID == uuid.Nil {
		return true
	}
	return c.PartnerID == senderID || c.PartnerID == receiverID
}

type Hub struct {
	clients map[string]*Client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// RegisterClient makes the client visible to fan-out before returning, so
// callers can register first, then load history, and nothing slips into the
// window between the two.
func (h *Hub) RegisterClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ID] = client
	h.mu.Unlock()
	log.Printf("Client registered: %s (UserID: %s)", client.ID, client.UserID)
}

func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	if old, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		close(old.Send)
		log.Printf("Client unregistered: %s", client.ID)
	}
	h.mu.Unlock()
}

// SendToUser sends data to every connection of one user.
func (h *Hub) SendToUser(userID uuid.UUID, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- payload:
			default:
				// full buffer, skip rather than block
			}
		}
	}
}

// SendToPair delivers a message event to connections belonging to either
// party, honoring each connection's pair filter.
func (h *Hub) SendToPair(senderID, receiverID uuid.UUID, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.WantsMessage(senderID, receiverID) {
			select {
			case client.Send <- payload:
			default:
			}
		}
	}
}
