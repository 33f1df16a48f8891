package websocket

import (
	"log"
	"sync"
)

// Hub tracks every live connection for the connected-players count and
// shutdown cleanup. Game routing goes through the relay service, not here.
type Hub struct {
	clients map[string]*Client
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) AddClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.ID()] = c
	log.Printf("Client %s connected", c.ID())
}

func (h *Hub) RemoveClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.clients, c.ID())
	log.Printf("Client %s disconnected", c.ID())
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}
