package db

import "time"

type MatchRecord struct {
	ID             int64     `json:"id" db:"id"`
	RoomID         string    `json:"room_id" db:"room_id"`
	WinnerID       string    `json:"winner_id" db:"winner_id"`
	LoserID        string    `json:"loser_id" db:"loser_id"`
	WinnerUsername string    `json:"winner_username" db:"winner_username"`
	LoserUsername  string    `json:"loser_username" db:"loser_username"`
	WinnerScore    int       `json:"winner_score" db:"winner_score"`
	LoserScore     int       `json:"loser_score" db:"loser_score"`
	Reason         string    `json:"reason" db:"reason"`
	FinishedAt     time.Time `json:"finished_at" db:"finished_at"`
}
