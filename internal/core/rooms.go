package core

import (
	"sync"

	"github.com/PolusVault/chess/internal/utils"
)

// DefaultMaxOwnedRooms caps how many rooms a single client may own.
const DefaultMaxOwnedRooms = 5

// JoinResult describes a successful join as observed inside the
// registry operation, so the caller can broadcast without re-reading
// mutable state.
type JoinResult struct {
	Room     string
	Joined   SeatInfo
	Opponent *SeatInfo // nil when the joiner is alone
	Others   []*Client // occupants to notify
}

// Departure describes one room a client left.
type Departure struct {
	Room    string
	Seat    *SeatInfo // nil when the client occupied no seat
	Deleted bool
	Others  []*Client // remaining occupants to notify
}

// RoomRegistry owns every live room and the reverse index from client
// id to the rooms it occupies. A single mutex serializes all mutations;
// no operation blocks on I/O while holding it.
type RoomRegistry struct {
	mu          sync.Mutex
	clients     *ClientRegistry
	rooms       map[string]*Room
	memberships map[string]map[string]struct{} // client id -> room ids
	maxOwned    int
	newID       func() string
}

// NewRoomRegistry builds a registry backed by the given client registry.
func NewRoomRegistry(clients *ClientRegistry, maxOwned int) *RoomRegistry {
	if maxOwned <= 0 {
		maxOwned = DefaultMaxOwnedRooms
	}
	return &RoomRegistry{
		clients:     clients,
		rooms:       make(map[string]*Room),
		memberships: make(map[string]map[string]struct{}),
		maxOwned:    maxOwned,
		newID:       utils.NewRoomID,
	}
}

// Create allocates an empty room owned by the client. The optional name
// updates the client's display name. Fails with quota_exceeded once the
// client owns maxOwned rooms.
func (r *RoomRegistry) Create(clientID, name string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.clients.Lookup(clientID)
	if c == nil {
		return "", coreError(ErrCodeClientNotFound, "create room: unknown client")
	}
	if c.ownedRooms >= r.maxOwned {
		return "", coreError(ErrCodeQuotaExceeded, "room limit exceeded")
	}
	if name != "" {
		c.Name = name
	}

	id := r.newID()
	if _, taken := r.rooms[id]; taken {
		// The id space makes a collision astronomically unlikely;
		// tolerate exactly one retry.
		id = r.newID()
		if _, taken := r.rooms[id]; taken {
			return "", coreError(ErrCodeInternal, "room id collision")
		}
	}

	r.rooms[id] = newRoom(id, clientID)
	c.ownedRooms++
	return id, nil
}

// Join seats the client in the room, preferring the requested color, or
// the first free seat (w before b) when color is empty.
func (r *RoomRegistry) Join(roomID, clientID, name string, color Color) (*JoinResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.clients.Lookup(clientID)
	if c == nil {
		return nil, coreError(ErrCodeClientNotFound, "join room: unknown client")
	}
	if name != "" {
		c.Name = name
	}

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, coreError(ErrCodeRoomNotFound, "room not found")
	}
	if room.full() {
		return nil, coreError(ErrCodeRoomFull, "room is full")
	}
	if room.has(clientID) {
		return nil, coreError(ErrCodeAlreadyJoined, "already in this room")
	}

	seated, ok := room.seat(c, color)
	if !ok {
		// Room wasn't full, so the requested seat is taken.
		return nil, coreError(ErrCodeRoomFull, "seat already taken")
	}

	if r.memberships[clientID] == nil {
		r.memberships[clientID] = make(map[string]struct{})
	}
	r.memberships[clientID][roomID] = struct{}{}

	return &JoinResult{
		Room:     roomID,
		Joined:   SeatInfo{Name: c.Name, Color: seated},
		Opponent: room.opponent(clientID),
		Others:   room.others(clientID),
	}, nil
}

// Leave vacates the client's seat. The room is deleted atomically when
// the last occupant leaves. Vacating no seat is a no-op, not an error.
func (r *RoomRegistry) Leave(roomID, clientID string) (*Departure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.leaveLocked(roomID, clientID)
}

func (r *RoomRegistry) leaveLocked(roomID, clientID string) (*Departure, error) {
	c := r.clients.Lookup(clientID)
	if c == nil {
		return nil, coreError(ErrCodeClientNotFound, "leave room: unknown client")
	}
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, coreError(ErrCodeRoomNotFound, "room not found")
	}

	seat := room.remove(clientID)
	if seat != nil {
		// Ownership accounting is best-effort and floored at zero;
		// it is not tied to the original owner.
		if c.ownedRooms > 0 {
			c.ownedRooms--
		}
		if members := r.memberships[clientID]; members != nil {
			delete(members, roomID)
			if len(members) == 0 {
				delete(r.memberships, clientID)
			}
		}
	}

	dep := &Departure{
		Room:   roomID,
		Seat:   seat,
		Others: room.others(clientID),
	}
	if room.empty() {
		delete(r.rooms, roomID)
		dep.Deleted = true
	}
	return dep, nil
}

// Disconnect removes the client from every room it occupies and from
// the client registry. Cleanup is best-effort: one room failing does
// not stop the rest. Each room's removal is individually atomic.
func (r *RoomRegistry) Disconnect(clientID string) []*Departure {
	r.mu.Lock()
	roomIDs := make([]string, 0, len(r.memberships[clientID]))
	for id := range r.memberships[clientID] {
		roomIDs = append(roomIDs, id)
	}
	r.mu.Unlock()

	departures := make([]*Departure, 0, len(roomIDs))
	for _, id := range roomIDs {
		dep, err := r.Leave(id, clientID)
		if err != nil {
			continue
		}
		departures = append(departures, dep)
	}

	r.mu.Lock()
	delete(r.memberships, clientID)
	r.mu.Unlock()
	r.clients.Unregister(clientID)

	return departures
}

// Lookup returns the room, or nil when absent.
func (r *RoomRegistry) Lookup(roomID string) *Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[roomID]
}

// Others returns every occupant of the room except the given client.
func (r *RoomRegistry) Others(roomID, clientID string) ([]*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[roomID]
	if !ok {
		return nil, coreError(ErrCodeRoomNotFound, "room not found")
	}
	return room.others(clientID), nil
}

// Len reports the number of live rooms.
func (r *RoomRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
