package relay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTicket(connID, userID, username string) *ticket {
	return &ticket{
		conn:     &fakeConn{id: connID},
		userID:   userID,
		username: username,
		joinedAt: time.Now(),
	}
}

func TestQueuePopPairOldestFirst(t *testing.T) {
	q := NewQueue()
	q.Push(newTicket("c1", "u1", "Alice"))
	q.Push(newTicket("c2", "u2", "Bob"))
	q.Push(newTicket("c3", "u3", "Carol"))

	p1, p2, ok := q.PopPair()
	require.True(t, ok)
	assert.Equal(t, "u1", p1.userID)
	assert.Equal(t, "u2", p2.userID)
	assert.Equal(t, 1, q.Len())
	assert.True(t, q.Contains("c3"))
}

func TestQueuePopPairNeedsTwo(t *testing.T) {
	q := NewQueue()
	q.Push(newTicket("c1", "u1", "Alice"))

	_, _, ok := q.PopPair()
	assert.False(t, ok)
	assert.Equal(t, 1, q.Len())
}

func TestQueueContainsUser(t *testing.T) {
	q := NewQueue()
	q.Push(newTicket("c1", "u1", "Alice"))

	assert.True(t, q.ContainsUser("u1"))
	assert.False(t, q.ContainsUser("u2"))
}

func TestQueueRemove(t *testing.T) {
	q := NewQueue()
	q.Push(newTicket("c1", "u1", "Alice"))
	q.Push(newTicket("c2", "u2", "Bob"))

	assert.True(t, q.Remove("c1"))
	assert.False(t, q.Remove("c1"))
	assert.Equal(t, 1, q.Len())
	assert.False(t, q.Contains("c1"))
	assert.True(t, q.Contains("c2"))
}

func TestQueueRemovePreservesOrder(t *testing.T) {
	q := NewQueue()
	q.Push(newTicket("c1", "u1", "Alice"))
	q.Push(newTicket("c2", "u2", "Bob"))
	q.Push(newTicket("c3", "u3", "Carol"))

	q.Remove("c2")

	p1, p2, ok := q.PopPair()
	require.True(t, ok)
	assert.Equal(t, "u1", p1.userID)
	assert.Equal(t, "u3", p2.userID)
}
