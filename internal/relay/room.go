package relay

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusCountdown Status = "countdown"
	StatusPlaying   Status = "playing"
	StatusFinished  Status = "finished"
)

const (
	ReasonFall       = "fall"
	ReasonDoubleFall = "double_fall"
	ReasonTimeout    = "timeout"
)

const (
	matchDuration = 2 * time.Minute
	seedRange     = 1_000_000 // platform layout seed, shared by both clients
)

// Room owns the relay state for one match. It always holds exactly two
// sessions; players are never removed individually, the room is evicted
// wholesale instead.
type Room struct {
	ID        string
	Seed      int
	Players   map[string]*Session
	StartedAt time.Time // zero until the countdown fires
	Duration  time.Duration
	Status    Status
	Winner    string
}

// EndResult reports a terminal game state. It is produced exactly once
// per room.
type EndResult struct {
	Reason string
	Winner string
}

func newRoom(p1, p2 *ticket) *Room {
	now := time.Now()
	return &Room{
		ID:   uuid.NewString(),
		Seed: rand.Intn(seedRange),
		Players: map[string]*Session{
			p1.userID: {
				UserID:     p1.userID,
				Conn:       p1.conn,
				Username:   p1.username,
				Alive:      true,
				LastUpdate: now,
			},
			p2.userID: {
				UserID:     p2.userID,
				Conn:       p2.conn,
				Username:   p2.username,
				Alive:      true,
				LastUpdate: now,
			},
		},
		Duration: matchDuration,
		Status:   StatusCountdown,
	}
}

// Opponent returns the other player's user id. A room always has exactly
// two sessions, so this is total for any current member.
func (r *Room) Opponent(userID string) string {
	for id := range r.Players {
		if id != userID {
			return id
		}
	}
	return ""
}

// ApplyUpdate merges the provided fields into the player's session and
// stamps the update time. Unknown user ids are ignored; correct routing
// never produces them.
func (r *Room) ApplyUpdate(userID string, u Update) {
	s, ok := r.Players[userID]
	if !ok {
		return
	}
	if u.X != nil {
		s.X = *u.X
	}
	if u.Y != nil {
		s.Y = *u.Y
	}
	if u.IsAlive != nil {
		s.Alive = *u.IsAlive
	}
	if u.Score != nil {
		s.Score = *u.Score
	}
	s.LastUpdate = time.Now()
}

// CheckEnd evaluates the end conditions and, on the first terminal one,
// records the winner and flips the room to finished. It returns nil once
// the room is finished, so a result is only ever reported once.
func (r *Room) CheckEnd(now time.Time) *EndResult {
	if r.Status == StatusFinished {
		return nil
	}

	var alive []string
	for id, s := range r.Players {
		if s.Alive {
			alive = append(alive, id)
		}
	}

	switch len(alive) {
	case 1:
		return r.finish(alive[0], ReasonFall)
	case 0:
		return r.finish(r.higherScorer(), ReasonDoubleFall)
	}

	if !r.StartedAt.IsZero() && now.Sub(r.StartedAt) >= r.Duration {
		return r.finish(r.higherScorer(), ReasonTimeout)
	}

	return nil
}

func (r *Room) finish(winner, reason string) *EndResult {
	r.Winner = winner
	r.Status = StatusFinished
	return &EndResult{Reason: reason, Winner: winner}
}

// higherScorer picks the session with the higher score. An exact tie goes
// to the lexicographically smaller user id, which is deterministic no
// matter the order the players joined in.
func (r *Room) higherScorer() string {
	var low, high string
	for id := range r.Players {
		if low == "" || id < low {
			high = low
			low = id
		} else {
			high = id
		}
	}
	if r.Players[high].Score > r.Players[low].Score {
		return high
	}
	return low
}
