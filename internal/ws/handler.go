package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wiliambaros9/monkey-flipper/internal/relay"
	wsPkg "github.com/wiliambaros9/monkey-flipper/pkg/websocket"
)

type Handler struct {
	hub   *wsPkg.Hub
	relay *relay.Service
}

func NewHandler(hub *wsPkg.Hub, relayService *relay.Service) *Handler {
	return &Handler{
		hub:   hub,
		relay: relayService,
	}
}

func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsPkg.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Upgrade failed: %v", err)
		return
	}

	client := wsPkg.NewClient(uuid.NewString(), conn)
	h.hub.AddClient(client)
	log.Printf("New connection: %s", client.ID())

	go h.read(client)
	go h.write(client)
}

func (h *Handler) read(c *wsPkg.Client) {
	defer func() {
		h.relay.Disconnect(c)
		h.hub.RemoveClient(c)
		c.Close()
	}()

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			log.Printf("Read error for client %s: %v", c.ID(), err)
			break
		}

		var env wsPkg.Envelope
		if err := json.Unmarshal(msg, &env); err != nil {
			log.Printf("Failed to unmarshal message from %s: %v", c.ID(), err)
			continue
		}

		switch env.Type {
		case "findMatch":
			var data struct {
				UserID   string `json:"userId"`
				Username string `json:"username"`
			}
			if err := json.Unmarshal(env.Data, &data); err != nil || data.UserID == "" {
				log.Printf("Bad findMatch payload from %s: %v", c.ID(), err)
				continue
			}
			h.relay.FindMatch(c, data.UserID, data.Username)

		case "cancelMatch":
			h.relay.CancelMatch(c)

		case "playerUpdate":
			var u relay.Update
			if err := json.Unmarshal(env.Data, &u); err != nil {
				log.Printf("Bad playerUpdate payload from %s: %v", c.ID(), err)
				continue
			}
			h.relay.PlayerUpdate(c, u)

		default:
			log.Printf("Unknown message type %q from client %s", env.Type, c.ID())
		}
	}
}

func (h *Handler) write(c *wsPkg.Client) {
	defer c.Close()

	for {
		select {
		case msg := <-c.Send:
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Printf("Write error for client %s: %v", c.ID(), err)
				return
			}
		case <-c.Done():
			return
		}
	}
}
