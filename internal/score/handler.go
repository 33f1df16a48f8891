package score

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service: service,
	}
}

type saveScoreRequest struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Score     *int   `json:"score"`
	Timestamp string `json:"timestamp"`
}

type saveScoreResponse struct {
	Success     bool   `json:"success"`
	IsNewRecord bool   `json:"isNewRecord"`
	BestScore   int    `json:"bestScore"`
	GamesPlayed int64  `json:"gamesPlayed"`
	Message     string `json:"message"`
}

func (h *Handler) SaveScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Score == nil {
		http.Error(w, "userId and score required", http.StatusBadRequest)
		return
	}

	playedAt := time.Now()
	if req.Timestamp != "" {
		if ts, err := time.Parse(time.RFC3339, req.Timestamp); err == nil {
			playedAt = ts
		}
	}

	result, err := h.service.RecordResult(r.Context(), req.UserID, req.Username, *req.Score, playedAt)
	if err != nil {
		log.Printf("Failed to save score for %s: %v", req.UserID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	message := "Score saved"
	if result.IsNewRecord {
		message = "New record!"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saveScoreResponse{
		Success:     true,
		IsNewRecord: result.IsNewRecord,
		BestScore:   result.BestScore,
		GamesPlayed: result.GamesPlayed,
		Message:     message,
	})
}

type leaderboardResponse struct {
	Success     bool    `json:"success"`
	Count       int     `json:"count"`
	Leaderboard []Entry `json:"leaderboard"`
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.service.TopN(r.Context(), limit)
	if err != nil {
		log.Printf("Failed to load leaderboard: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leaderboardResponse{
		Success:     true,
		Count:       len(entries),
		Leaderboard: entries,
	})
}
