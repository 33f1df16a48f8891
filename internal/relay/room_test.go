package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoom() *Room {
	return newRoom(
		newTicket("conn-a", "user-a", "Alice"),
		newTicket("conn-b", "user-b", "Bob"),
	)
}

func fptr(v float64) *float64 { return &v }
func bptr(v bool) *bool       { return &v }
func iptr(v int) *int         { return &v }

func TestNewRoomInitialState(t *testing.T) {
	r := newTestRoom()

	assert.NotEmpty(t, r.ID)
	assert.GreaterOrEqual(t, r.Seed, 0)
	assert.Less(t, r.Seed, seedRange)
	assert.Equal(t, StatusCountdown, r.Status)
	assert.True(t, r.StartedAt.IsZero())
	assert.Empty(t, r.Winner)
	assert.Equal(t, 2*time.Minute, r.Duration)

	require.Len(t, r.Players, 2)
	for _, s := range r.Players {
		assert.True(t, s.Alive)
		assert.Zero(t, s.X)
		assert.Zero(t, s.Y)
		assert.Zero(t, s.Score)
	}
}

func TestOpponent(t *testing.T) {
	r := newTestRoom()

	assert.Equal(t, "user-b", r.Opponent("user-a"))
	assert.Equal(t, "user-a", r.Opponent("user-b"))
}

func TestApplyUpdateMergesOnlyProvidedFields(t *testing.T) {
	r := newTestRoom()
	r.ApplyUpdate("user-a", Update{X: fptr(10), Y: fptr(20), Score: iptr(7)})

	s := r.Players["user-a"]
	assert.Equal(t, 10.0, s.X)
	assert.Equal(t, 20.0, s.Y)
	assert.Equal(t, 7, s.Score)
	assert.True(t, s.Alive, "absent isAlive must not change the session")

	r.ApplyUpdate("user-a", Update{Y: fptr(25)})
	assert.Equal(t, 10.0, s.X, "absent x must not change the session")
	assert.Equal(t, 25.0, s.Y)
	assert.Equal(t, 7, s.Score)
}

func TestApplyUpdateUnknownPlayerIsNoop(t *testing.T) {
	r := newTestRoom()
	r.ApplyUpdate("ghost", Update{Score: iptr(99)})

	require.Len(t, r.Players, 2)
	assert.Zero(t, r.Players["user-a"].Score)
	assert.Zero(t, r.Players["user-b"].Score)
}

func TestCheckEndFall(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.Players["user-a"].Score = 5
	r.Players["user-b"].Score = 3
	r.Players["user-b"].Alive = false

	res := r.CheckEnd(time.Now())
	require.NotNil(t, res)
	assert.Equal(t, ReasonFall, res.Reason)
	assert.Equal(t, "user-a", res.Winner)
	assert.Equal(t, StatusFinished, r.Status)
	assert.Equal(t, "user-a", r.Winner)
}

func TestCheckEndDoubleFallHigherScoreWins(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.Players["user-a"].Alive = false
	r.Players["user-a"].Score = 7
	r.Players["user-b"].Alive = false
	r.Players["user-b"].Score = 10

	res := r.CheckEnd(time.Now())
	require.NotNil(t, res)
	assert.Equal(t, ReasonDoubleFall, res.Reason)
	assert.Equal(t, "user-b", res.Winner)
}

func TestCheckEndDoubleFallTieBreaksToLowerID(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.Players["user-a"].Alive = false
	r.Players["user-a"].Score = 10
	r.Players["user-b"].Alive = false
	r.Players["user-b"].Score = 10

	res := r.CheckEnd(time.Now())
	require.NotNil(t, res)
	assert.Equal(t, ReasonDoubleFall, res.Reason)
	assert.Equal(t, "user-a", res.Winner)
}

func TestCheckEndTimeout(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.StartedAt = time.Now().Add(-3 * time.Minute)
	r.Players["user-a"].Score = 4
	r.Players["user-b"].Score = 9

	res := r.CheckEnd(time.Now())
	require.NotNil(t, res)
	assert.Equal(t, ReasonTimeout, res.Reason)
	assert.Equal(t, "user-b", res.Winner)
}

func TestCheckEndNoTimeoutBeforeStart(t *testing.T) {
	r := newTestRoom()

	res := r.CheckEnd(time.Now().Add(time.Hour))
	assert.Nil(t, res, "an unstarted room cannot time out")
	assert.Equal(t, StatusCountdown, r.Status)
}

func TestCheckEndNothingWhilePlaying(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.StartedAt = time.Now()

	assert.Nil(t, r.CheckEnd(time.Now()))
	assert.Equal(t, StatusPlaying, r.Status)
}

func TestCheckEndIdempotentAfterFinished(t *testing.T) {
	r := newTestRoom()
	r.Status = StatusPlaying
	r.Players["user-b"].Alive = false

	res := r.CheckEnd(time.Now())
	require.NotNil(t, res)
	winner := r.Winner

	// Even a state that would pick a different winner must not re-fire.
	r.Players["user-a"].Alive = false
	for i := 0; i < 3; i++ {
		assert.Nil(t, r.CheckEnd(time.Now()))
	}
	assert.Equal(t, winner, r.Winner)
}
