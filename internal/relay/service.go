package relay

import (
	"log"
	"sync/atomic"
	"time"

	"github.com/wiliambaros9/monkey-flipper/db"
)

const (
	defaultCountdownDelay = 1 * time.Second
	defaultRetentionDelay = 10 * time.Second
)

// Recorder archives finished matches. RecordMatch runs on a short-lived
// goroutine per match so a slow database never stalls the dispatch loop.
type Recorder interface {
	RecordMatch(rec db.MatchRecord) error
}

// Service is the event router. Exported handlers post work onto a single
// task channel and Run drains it one task at a time, so queue, room and
// directory state is only ever touched from one goroutine and needs no
// locks. Timers re-enter through the same channel.
type Service struct {
	queue    *Queue
	rooms    *Directory
	recorder Recorder

	tasks chan func()
	done  chan struct{}

	countdownDelay time.Duration
	retentionDelay time.Duration

	queueSize   atomic.Int64
	activeRooms atomic.Int64
}

func NewService(recorder Recorder) *Service {
	return &Service{
		queue:          NewQueue(),
		rooms:          NewDirectory(),
		recorder:       recorder,
		tasks:          make(chan func(), 256),
		done:           make(chan struct{}),
		countdownDelay: defaultCountdownDelay,
		retentionDelay: defaultRetentionDelay,
	}
}

// Run processes tasks until Stop. Each task runs to completion before the
// next starts; a panicking task is logged and dropped without taking the
// loop down with it.
func (s *Service) Run() {
	for {
		select {
		case fn := <-s.tasks:
			s.runTask(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Service) Stop() {
	close(s.done)
}

func (s *Service) runTask(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in relay task: %v", r)
		}
	}()
	fn()
}

func (s *Service) dispatch(fn func()) {
	select {
	case s.tasks <- fn:
	case <-s.done:
	}
}

// FindMatch queues the player and pairs the two oldest entries as soon as
// the queue holds two.
func (s *Service) FindMatch(c Conn, userID, username string) {
	s.dispatch(func() { s.findMatch(c, userID, username) })
}

func (s *Service) CancelMatch(c Conn) {
	s.dispatch(func() { s.cancelMatch(c.ID()) })
}

func (s *Service) PlayerUpdate(c Conn, u Update) {
	s.dispatch(func() { s.playerUpdate(c, u) })
}

// Disconnect removes the connection from whichever structure holds it.
// A player who drops mid-game forfeits to the opponent.
func (s *Service) Disconnect(c Conn) {
	s.dispatch(func() { s.disconnect(c) })
}

// QueueSize and ActiveRooms are mirrored counters for the stats endpoint;
// they are safe to read from any goroutine.
func (s *Service) QueueSize() int {
	return int(s.queueSize.Load())
}

func (s *Service) ActiveRooms() int {
	return int(s.activeRooms.Load())
}

func (s *Service) syncCounters() {
	s.queueSize.Store(int64(s.queue.Len()))
	s.activeRooms.Store(int64(s.rooms.Len()))
}

func (s *Service) findMatch(c Conn, userID, username string) {
	if s.queue.Contains(c.ID()) {
		log.Printf("Client %s is already searching, ignoring findMatch", c.ID())
		return
	}
	// Rooms key sessions by user id, so pairing one user against themselves
	// would collapse the room to a single session.
	if s.queue.ContainsUser(userID) {
		log.Printf("User %s is already searching on another connection, ignoring findMatch", userID)
		return
	}

	s.queue.Push(&ticket{
		conn:     c,
		userID:   userID,
		username: username,
		joinedAt: time.Now(),
	})
	log.Printf("Player %s (%s) joined the queue, %d waiting", username, userID, s.queue.Len())

	p1, p2, ok := s.queue.PopPair()
	if !ok {
		s.syncCounters()
		c.Emit(EventSearching, SearchingPayload{QueueSize: s.queue.Len()})
		return
	}

	room := newRoom(p1, p2)
	s.rooms.Insert(room)
	s.syncCounters()
	log.Printf("Created room %s: %s vs %s (seed %d)", room.ID, p1.username, p2.username, room.Seed)

	p1.conn.Emit(EventGameStart, GameStartPayload{
		RoomID:   room.ID,
		Seed:     room.Seed,
		Opponent: OpponentInfo{ID: p2.userID, Username: p2.username},
	})
	p2.conn.Emit(EventGameStart, GameStartPayload{
		RoomID:   room.ID,
		Seed:     room.Seed,
		Opponent: OpponentInfo{ID: p1.userID, Username: p1.username},
	})

	roomID := room.ID
	time.AfterFunc(s.countdownDelay, func() {
		s.dispatch(func() { s.startRoom(roomID) })
	})
}

func (s *Service) cancelMatch(connID string) {
	if s.queue.Remove(connID) {
		s.syncCounters()
		log.Printf("Client %s cancelled matchmaking, %d waiting", connID, s.queue.Len())
	}
}

// startRoom fires when the countdown timer elapses. The room may have been
// evicted by a disconnect in the meantime, so it re-checks before acting.
func (s *Service) startRoom(roomID string) {
	room, ok := s.rooms.Get(roomID)
	if !ok {
		log.Printf("Room %s gone before countdown, skipping start", roomID)
		return
	}
	if room.Status != StatusCountdown {
		return
	}

	room.Status = StatusPlaying
	room.StartedAt = time.Now()
	for _, sess := range room.Players {
		sess.Conn.Emit(EventCountdown, 3)
	}
	log.Printf("Room %s is now playing", roomID)
}

func (s *Service) playerUpdate(c Conn, u Update) {
	room, userID, ok := s.rooms.ByConn(c.ID())
	if !ok {
		log.Printf("playerUpdate from client %s with no room, ignoring", c.ID())
		return
	}

	room.ApplyUpdate(userID, u)

	opponent := room.Players[room.Opponent(userID)]
	if opponent == nil {
		log.Printf("Room %s has no opponent for %s, ignoring update", room.ID, userID)
		return
	}
	opponent.Conn.Emit(EventOpponentUpdate, u)

	if room.Status == StatusFinished {
		return
	}
	if res := room.CheckEnd(time.Now()); res != nil {
		s.finishRoom(room, res)
	}
}

func (s *Service) finishRoom(room *Room, res *EndResult) {
	log.Printf("Room %s finished: %s wins (%s)", room.ID, res.Winner, res.Reason)

	for id, sess := range room.Players {
		opponent := room.Players[room.Opponent(id)]
		if opponent == nil {
			log.Printf("Room %s has no opponent for %s, skipping gameEnd", room.ID, id)
			continue
		}
		sess.Conn.Emit(EventGameEnd, GameEndPayload{
			Reason:           res.Reason,
			Winner:           id == res.Winner,
			YourScore:        sess.Score,
			OpponentScore:    opponent.Score,
			YourUsername:     sess.Username,
			OpponentUsername: opponent.Username,
		})
	}

	s.archiveMatch(room, res)

	// Keep the room around briefly so late deliveries can still resolve it.
	roomID := room.ID
	time.AfterFunc(s.retentionDelay, func() {
		s.dispatch(func() { s.evictRoom(roomID) })
	})
}

func (s *Service) archiveMatch(room *Room, res *EndResult) {
	if s.recorder == nil {
		return
	}
	winner := room.Players[res.Winner]
	loser := room.Players[room.Opponent(res.Winner)]
	if winner == nil || loser == nil {
		log.Printf("Room %s is missing a session, not archiving", room.ID)
		return
	}
	rec := db.MatchRecord{
		RoomID:         room.ID,
		WinnerID:       winner.UserID,
		LoserID:        loser.UserID,
		WinnerUsername: winner.Username,
		LoserUsername:  loser.Username,
		WinnerScore:    winner.Score,
		LoserScore:     loser.Score,
		Reason:         res.Reason,
		FinishedAt:     time.Now(),
	}
	go func() {
		if err := s.recorder.RecordMatch(rec); err != nil {
			log.Printf("Failed to archive match %s: %v", rec.RoomID, err)
		}
	}()
}

// evictRoom fires after the retention delay. A disconnect may already have
// removed the room, in which case there is nothing to do.
func (s *Service) evictRoom(roomID string) {
	if s.rooms.Remove(roomID) {
		s.syncCounters()
		log.Printf("Room %s removed", roomID)
	}
}

func (s *Service) disconnect(c Conn) {
	if s.queue.Remove(c.ID()) {
		s.syncCounters()
		log.Printf("Client %s left the queue, %d waiting", c.ID(), s.queue.Len())
	}

	room, userID, ok := s.rooms.ByConn(c.ID())
	if !ok {
		return
	}

	opponent := room.Players[room.Opponent(userID)]
	if opponent != nil {
		opponent.Conn.Emit(EventOpponentDisconnected, OpponentDisconnectedPayload{
			Message: "Your opponent disconnected. You win!",
		})
	} else {
		log.Printf("Room %s has no opponent for %s to notify", room.ID, userID)
	}

	// Abandoned, not concluded: no retention window.
	s.rooms.Remove(room.ID)
	s.syncCounters()
	log.Printf("Room %s removed after %s disconnected", room.ID, userID)
}
