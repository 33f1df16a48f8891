package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Envelope is the wire format for every message in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type Client struct {
	id        string
	Conn      *websocket.Conn
	Send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		Conn: conn,
		Send: make(chan []byte, 16),
		done: make(chan struct{}),
	}
}

func (c *Client) ID() string {
	return c.id
}

// Done is closed when the connection is torn down; the write pump exits on it.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

// Emit marshals an event envelope and queues it for the write pump.
// Messages to a closed or backed-up connection are dropped, never blocked on.
func (c *Client) Emit(event string, data any) bool {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Printf("Failed to marshal %s payload for client %s: %v", event, c.id, err)
		return false
	}
	msg, err := json.Marshal(Envelope{Type: event, Data: payload})
	if err != nil {
		log.Printf("Failed to marshal %s envelope for client %s: %v", event, c.id, err)
		return false
	}

	select {
	case <-c.done:
		return false
	case c.Send <- msg:
		return true
	default:
		log.Printf("Send buffer full for client %s, dropping %s", c.id, event)
		return false
	}
}
