package relay

// Outbound event names.
const (
	EventSearching            = "searching"
	EventGameStart            = "gameStart"
	EventCountdown            = "countdown"
	EventOpponentUpdate       = "opponentUpdate"
	EventGameEnd              = "gameEnd"
	EventOpponentDisconnected = "opponentDisconnected"
)

type SearchingPayload struct {
	QueueSize int `json:"queueSize"`
}

type OpponentInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type GameStartPayload struct {
	RoomID   string       `json:"roomId"`
	Seed     int          `json:"seed"`
	Opponent OpponentInfo `json:"opponent"`
}

type GameEndPayload struct {
	Reason           string `json:"reason"`
	Winner           bool   `json:"winner"`
	YourScore        int    `json:"yourScore"`
	OpponentScore    int    `json:"opponentScore"`
	YourUsername     string `json:"yourUsername"`
	OpponentUsername string `json:"opponentUsername"`
}

type OpponentDisconnectedPayload struct {
	Message string `json:"message"`
}
