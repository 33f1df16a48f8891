package relay

import "time"

// Conn is the transport-side handle the relay addresses players by and
// emits events through. *websocket.Client satisfies it; tests use fakes.
type Conn interface {
	ID() string
	Emit(event string, data any) bool
}

// ticket is one waiting entry in the matchmaking queue.
type ticket struct {
	conn     Conn
	userID   string
	username string
	joinedAt time.Time
}

// Session is one player's live state inside a room.
type Session struct {
	UserID     string
	Conn       Conn
	Username   string
	X          float64
	Y          float64
	Alive      bool
	Score      int
	LastUpdate time.Time
}

// Update carries the optional fields of a playerUpdate message. A nil
// field was absent from the payload and leaves the session value as is.
type Update struct {
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	IsAlive *bool    `json:"isAlive,omitempty"`
	Score   *int     `json:"score,omitempty"`
}
