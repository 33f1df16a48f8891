package relay

// Directory maps room ids to live rooms and resolves which room a
// connection belongs to. All methods must run on the service dispatch
// goroutine.
type Directory struct {
	rooms map[string]*Room
}

func NewDirectory() *Directory {
	return &Directory{
		rooms: make(map[string]*Room),
	}
}

func (d *Directory) Len() int {
	return len(d.rooms)
}

func (d *Directory) Insert(r *Room) {
	d.rooms[r.ID] = r
}

func (d *Directory) Get(roomID string) (*Room, bool) {
	r, ok := d.rooms[roomID]
	return r, ok
}

func (d *Directory) Remove(roomID string) bool {
	if _, ok := d.rooms[roomID]; !ok {
		return false
	}
	delete(d.rooms, roomID)
	return true
}

// ByConn finds the room holding the given connection and the user id it
// belongs to. Linear scan over all rooms; fine for the room counts a
// single instance hosts.
func (d *Directory) ByConn(connID string) (*Room, string, bool) {
	for _, room := range d.rooms {
		for id, s := range room.Players {
			if s.Conn.ID() == connID {
				return room, id, true
			}
		}
	}
	return nil, "", false
}
