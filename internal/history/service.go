package history

import (
	"database/sql"
	"fmt"

	"github.com/wiliambaros9/monkey-flipper/db"
)

// Service archives finished matches to postgres.
type Service struct {
	db *sql.DB
}

func NewService(database *sql.DB) *Service {
	return &Service{db: database}
}

func (s *Service) RecordMatch(rec db.MatchRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO matches (room_id, winner_id, loser_id, winner_username, loser_username, winner_score, loser_score, reason, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.RoomID, rec.WinnerID, rec.LoserID, rec.WinnerUsername, rec.LoserUsername, rec.WinnerScore, rec.LoserScore, rec.Reason, rec.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to insert match record: %w", err)
	}
	return nil
}

func (s *Service) RecentMatches(limit int) ([]db.MatchRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, room_id, winner_id, loser_id, winner_username, loser_username, winner_score, loser_score, reason, finished_at
		FROM matches
		ORDER BY finished_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []db.MatchRecord
	for rows.Next() {
		var rec db.MatchRecord
		if err := rows.Scan(&rec.ID, &rec.RoomID, &rec.WinnerID, &rec.LoserID, &rec.WinnerUsername, &rec.LoserUsername, &rec.WinnerScore, &rec.LoserScore, &rec.Reason, &rec.FinishedAt); err != nil {
			return nil, err
		}
		matches = append(matches, rec)
	}
	return matches, rows.Err()
}
