package relay

// Queue is the ordered matchmaking waiting list. Entries pair strictly
// oldest-first. All methods must run on the service dispatch goroutine.
type Queue struct {
	waiting []*ticket
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Len() int {
	return len(q.waiting)
}

func (q *Queue) Contains(connID string) bool {
	for _, t := range q.waiting {
		if t.conn.ID() == connID {
			return true
		}
	}
	return false
}

func (q *Queue) ContainsUser(userID string) bool {
	for _, t := range q.waiting {
		if t.userID == userID {
			return true
		}
	}
	return false
}

func (q *Queue) Push(t *ticket) {
	q.waiting = append(q.waiting, t)
}

// PopPair removes and returns the two oldest entries. It fails without
// touching the queue when fewer than two players are waiting.
func (q *Queue) PopPair() (*ticket, *ticket, bool) {
	if len(q.waiting) < 2 {
		return nil, nil, false
	}
	p1, p2 := q.waiting[0], q.waiting[1]
	q.waiting = q.waiting[2:]
	return p1, p2, true
}

// Remove drops the entry for the given connection, if any.
func (q *Queue) Remove(connID string) bool {
	for i, t := range q.waiting {
		if t.conn.ID() == connID {
			q.waiting = append(q.waiting[:i], q.waiting[i+1:]...)
			return true
		}
	}
	return false
}
