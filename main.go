package main

import (
	"database/sql"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	"github.com/wiliambaros9/monkey-flipper/config"
	"github.com/wiliambaros9/monkey-flipper/internal/history"
	"github.com/wiliambaros9/monkey-flipper/internal/relay"
	"github.com/wiliambaros9/monkey-flipper/internal/score"
	"github.com/wiliambaros9/monkey-flipper/internal/stats"
	"github.com/wiliambaros9/monkey-flipper/internal/ws"
	redisPkg "github.com/wiliambaros9/monkey-flipper/pkg/redis"
	wsPkg "github.com/wiliambaros9/monkey-flipper/pkg/websocket"
)

func main() {
	cfg := config.LoadConfig()

	database, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatal("Failed to connect database:", err)
	}
	defer database.Close()

	rdb := redisPkg.NewRedisClient(cfg.RedisAddr)

	historyService := history.NewService(database)
	relayService := relay.NewService(historyService)
	go relayService.Run()

	hub := wsPkg.NewHub()
	wsHandler := ws.NewHandler(hub, relayService)

	scoreService := score.NewService(rdb)
	scoreHandler := score.NewHandler(scoreService)
	historyHandler := history.NewHandler(historyService)
	statsHandler := stats.NewHandler(relayService, hub)

	http.HandleFunc("/ws", wsHandler.ServeWS)
	http.HandleFunc("/api/score", scoreHandler.SaveScore)
	http.HandleFunc("/api/leaderboard", scoreHandler.Leaderboard)
	http.HandleFunc("/api/matches/recent", historyHandler.Recent)
	http.HandleFunc("/api/stats", statsHandler.Stats)
	http.HandleFunc("/api/health", statsHandler.Health)

	log.Println("Server started at :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
