package history

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/wiliambaros9/monkey-flipper/db"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	matches, err := h.service.RecentMatches(limit)
	if err != nil {
		log.Printf("Failed to load recent matches: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if matches == nil {
		matches = []db.MatchRecord{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Count   int              `json:"count"`
		Matches []db.MatchRecord `json:"matches"`
	}{
		Count:   len(matches),
		Matches: matches,
	})
}
