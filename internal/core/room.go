package core

// Color labels one of the two seats in a room.
type Color string

const (
	ColorWhite Color = "w"
	ColorBlack Color = "b"
)

// seatOrder fixes the iteration order over seats: white is always
// filled first when the joiner has no preference.
var seatOrder = [2]Color{ColorWhite, ColorBlack}

// SeatInfo is the broadcast-facing view of an occupied seat.
type SeatInfo struct {
	Name  string `json:"name"`
	Color Color  `json:"color"`
}

// Room is a two-seat match session. It holds non-owning references to
// clients; the RoomRegistry serializes all access, so Room methods do
// no locking of their own.
type Room struct {
	ID      string
	OwnerID string
	seats   map[Color]*Client
}

func newRoom(id, ownerID string) *Room {
	return &Room{
		ID:      id,
		OwnerID: ownerID,
		seats: map[Color]*Client{
			ColorWhite: nil,
			ColorBlack: nil,
		},
	}
}

// seat places a client on the requested color, or on the first free
// seat in order when color is empty. Returns the occupied color, or
// false when the client is already seated or no matching seat is free.
func (r *Room) seat(c *Client, color Color) (Color, bool) {
	if r.has(c.ID) {
		return "", false
	}

	if color == "" {
		for _, sc := range seatOrder {
			if r.seats[sc] == nil {
				r.seats[sc] = c
				return sc, true
			}
		}
		return "", false
	}

	if r.seats[color] != nil {
		return "", false
	}
	r.seats[color] = c
	return color, true
}

// remove vacates whichever seat the client occupies. Returns the
// vacated seat info, or nil when the client wasn't seated.
func (r *Room) remove(clientID string) *SeatInfo {
	for _, sc := range seatOrder {
		if p := r.seats[sc]; p != nil && p.ID == clientID {
			r.seats[sc] = nil
			return &SeatInfo{Name: p.Name, Color: sc}
		}
	}
	return nil
}

// player returns the seat info of the given client, or nil.
func (r *Room) player(clientID string) *SeatInfo {
	for _, sc := range seatOrder {
		if p := r.seats[sc]; p != nil && p.ID == clientID {
			return &SeatInfo{Name: p.Name, Color: sc}
		}
	}
	return nil
}

// opponent returns the seat info of the other occupant, or nil.
func (r *Room) opponent(clientID string) *SeatInfo {
	for _, sc := range seatOrder {
		if p := r.seats[sc]; p != nil && p.ID != clientID {
			return &SeatInfo{Name: p.Name, Color: sc}
		}
	}
	return nil
}

// others returns every occupant except the given client.
func (r *Room) others(clientID string) []*Client {
	var out []*Client
	for _, sc := range seatOrder {
		if p := r.seats[sc]; p != nil && p.ID != clientID {
			out = append(out, p)
		}
	}
	return out
}

func (r *Room) has(clientID string) bool {
	for _, p := range r.seats {
		if p != nil && p.ID == clientID {
			return true
		}
	}
	return false
}

func (r *Room) full() bool {
	for _, p := range r.seats {
		if p == nil {
			return false
		}
	}
	return true
}

func (r *Room) empty() bool {
	for _, p := range r.seats {
		if p != nil {
			return false
		}
	}
	return true
}
