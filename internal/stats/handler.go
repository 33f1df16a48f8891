package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/wiliambaros9/monkey-flipper/internal/relay"
	wsPkg "github.com/wiliambaros9/monkey-flipper/pkg/websocket"
)

type Handler struct {
	relay *relay.Service
	hub   *wsPkg.Hub
}

func NewHandler(relayService *relay.Service, hub *wsPkg.Hub) *Handler {
	return &Handler{
		relay: relayService,
		hub:   hub,
	}
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		QueueSize        int `json:"queueSize"`
		ActiveGames      int `json:"activeGames"`
		ConnectedPlayers int `json:"connectedPlayers"`
	}{
		QueueSize:        h.relay.QueueSize(),
		ActiveGames:      h.relay.ActiveRooms(),
		ConnectedPlayers: h.hub.Count(),
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Status    string `json:"status"`
		Timestamp int64  `json:"timestamp"`
	}{
		Status:    "ok",
		Timestamp: time.Now().UnixMilli(),
	})
}
