package score

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	leaderboardKey   = "leaderboard"
	userKeyPrefix    = "score:user:"
	historyKeyPrefix = "score:history:"
	historyLimit     = 100
)

// Service keeps best scores in a sorted set and per-player metadata in a
// hash, so the top-N read is a single ZREVRANGE.
type Service struct {
	rdb *redis.Client
}

func NewService(rdb *redis.Client) *Service {
	return &Service{rdb: rdb}
}

type Result struct {
	IsNewRecord bool
	BestScore   int
	GamesPlayed int64
}

type Entry struct {
	UserID      string `json:"userId"`
	Username    string `json:"username"`
	BestScore   int    `json:"bestScore"`
	GamesPlayed int64  `json:"gamesPlayed"`
	LastPlayed  string `json:"lastPlayed"`
}

// RecordResult stores one finished game for a player and reports whether
// it set a new personal best.
func (s *Service) RecordResult(ctx context.Context, userID, username string, points int, playedAt time.Time) (Result, error) {
	userKey := userKeyPrefix + userID
	last := playedAt.UTC().Format(time.RFC3339)

	games, err := s.rdb.HIncrBy(ctx, userKey, "gamesPlayed", 1).Result()
	if err != nil {
		return Result{}, fmt.Errorf("failed to bump games played: %w", err)
	}
	if err := s.rdb.HSet(ctx, userKey, "username", username, "lastPlayed", last).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to store player metadata: %w", err)
	}

	historyKey := historyKeyPrefix + userID
	if err := s.rdb.LPush(ctx, historyKey, fmt.Sprintf("%d@%s", points, last)).Err(); err != nil {
		return Result{}, fmt.Errorf("failed to append score history: %w", err)
	}
	if err := s.rdb.LTrim(ctx, historyKey, 0, historyLimit-1).Err(); err != nil {
		log.Printf("Failed to trim score history for %s: %v", userID, err)
	}

	best, err := s.rdb.ZScore(ctx, leaderboardKey, userID).Result()
	if err != nil && err != redis.Nil {
		return Result{}, fmt.Errorf("failed to read best score: %w", err)
	}

	write, isNewRecord := leaderboardWrite(points, best, err == redis.Nil)
	if isNewRecord {
		best = float64(points)
	}
	if write {
		if err := s.rdb.ZAdd(ctx, leaderboardKey, redis.Z{Score: best, Member: userID}).Err(); err != nil {
			return Result{}, fmt.Errorf("failed to update best score: %w", err)
		}
	}

	return Result{
		IsNewRecord: isNewRecord,
		BestScore:   int(best),
		GamesPlayed: games,
	}, nil
}

// leaderboardWrite reports whether the leaderboard set needs a write for
// this game and whether it sets a new personal best. A first-time player
// is always added, so a 0-score debut still shows up in the leaderboard.
func leaderboardWrite(points int, best float64, firstRecord bool) (write, isNewRecord bool) {
	isNewRecord = float64(points) > best
	return isNewRecord || firstRecord, isNewRecord
}

// TopN returns up to limit players ordered by best score descending.
func (s *Service) TopN(ctx context.Context, limit int) ([]Entry, error) {
	ids, err := s.rdb.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(ids))
	for _, z := range ids {
		userID, ok := z.Member.(string)
		if !ok {
			continue
		}
		fields, err := s.rdb.HGetAll(ctx, userKeyPrefix+userID).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to read player %s: %w", userID, err)
		}

		username := fields["username"]
		if username == "" {
			username = "Anonymous"
		}
		games, _ := strconv.ParseInt(fields["gamesPlayed"], 10, 64)

		entries = append(entries, Entry{
			UserID:      userID,
			Username:    username,
			BestScore:   int(z.Score),
			GamesPlayed: games,
			LastPlayed:  fields["lastPlayed"],
		})
	}
	return entries, nil
}
