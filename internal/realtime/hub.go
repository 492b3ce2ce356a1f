package realtime

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one live websocket connection belonging to a user. A user may
// hold several connections (multiple tabs/devices).
type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn

	mu sync.Mutex
}

// WriteJSON serializes gorilla's writer; concurrent pushes to the same
// connection would otherwise corrupt frames.
func (c *Client) WriteJSON(msg []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub is the in-process presence registry mapping users to their live
// connections. It is a delivery hint only; the persisted notification row is
// the durable artifact, so the registry being lost on restart is acceptable.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uuid.UUID]map[*Client]struct{})}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*Client]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Connected reports whether the user has at least one live connection.
func (h *Hub) Connected(userID uuid.UUID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Push sends the payload to every live connection of the user. Delivery is
// fire-and-forget: write errors and absent connections are not reported back
// to the caller beyond the boolean.
func (h *Hub) Push(userID uuid.UUID, payload any) bool {
	msg, err := json.Marshal(payload)
	if err != nil {
		return false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := false
	for c := range h.clients[userID] {
		if err := c.WriteJSON(msg); err == nil {
			delivered = true
		}
	}
	return delivered
}
