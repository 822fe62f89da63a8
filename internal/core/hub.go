package core

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// Hub is the event dispatcher over the session registries. It performs
// the registry operation first and only then notifies affected clients,
// so a broadcast never happens inside a registry's critical section.
type Hub struct {
	clients *ClientRegistry
	rooms   *RoomRegistry
	log     *zerolog.Logger
}

// NewHub wires the client and room registries behind one dispatcher.
func NewHub(maxClients, maxOwnedRooms int, logger *zerolog.Logger) *Hub {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	clients := NewClientRegistry(maxClients)
	return &Hub{
		clients: clients,
		rooms:   NewRoomRegistry(clients, maxOwnedRooms),
		log:     logger,
	}
}

// Connect registers a client for the connection id. The transport must
// call this before dispatching any other event for the connection.
func (h *Hub) Connect(id string) (*Client, error) {
	c, err := h.clients.Register(id)
	if err != nil {
		h.log.Warn().Str("client_id", id).Int("clients", h.clients.Len()).Msg("connect refused: client limit")
		return nil, err
	}
	h.log.Debug().Str("client_id", id).Msg("client connected")
	return c, nil
}

// Disconnect removes the client from every room it occupies, notifies
// the opponents left behind, and unregisters the client.
func (h *Hub) Disconnect(id string) {
	departures := h.rooms.Disconnect(id)
	for _, dep := range departures {
		h.notifyLeft(dep)
	}
	h.log.Debug().Str("client_id", id).Int("rooms_left", len(departures)).Msg("client disconnected")
}

// CreateGame allocates a room and seats the creator at the requested
// color. Returns the new room id.
func (h *Hub) CreateGame(clientID, name string, color Color) (string, error) {
	roomID, err := h.rooms.Create(clientID, name)
	if err != nil {
		h.logErr(err, clientID).Msg("create game rejected")
		return "", err
	}
	if _, err := h.rooms.Join(roomID, clientID, "", color); err != nil {
		// A freshly created room always has both seats free.
		h.logErr(err, clientID).Str("room_id", roomID).Msg("creator could not be seated")
		return "", err
	}
	h.log.Info().Str("client_id", clientID).Str("room_id", roomID).Msg("game created")
	return roomID, nil
}

// JoinGame seats the client in an existing room and notifies the other
// occupant. Returns the opponent's seat info for the join ack.
func (h *Hub) JoinGame(roomID, clientID, name string, color Color) (*SeatInfo, error) {
	res, err := h.rooms.Join(roomID, clientID, name, color)
	if err != nil {
		h.logErr(err, clientID).Str("room_id", roomID).Msg("join game rejected")
		return nil, err
	}

	joined := res.Joined
	for _, other := range res.Others {
		other.notify(&Event{Kind: EventOpponentConnected, Room: roomID, Seat: &joined})
	}
	h.log.Info().Str("client_id", clientID).Str("room_id", roomID).Str("color", string(joined.Color)).Msg("game joined")
	return res.Opponent, nil
}

// LeaveGame vacates the client's seat and notifies the remaining
// occupant. An empty room is gone by the time this returns.
func (h *Hub) LeaveGame(roomID, clientID string) error {
	dep, err := h.rooms.Leave(roomID, clientID)
	if err != nil {
		h.logErr(err, clientID).Str("room_id", roomID).Msg("leave game rejected")
		return err
	}
	h.notifyLeft(dep)
	return nil
}

// RelayMove forwards the move payload verbatim to every other occupant
// of the room. Moves are not rule-validated here.
func (h *Hub) RelayMove(roomID, clientID string, move json.RawMessage) error {
	others, err := h.rooms.Others(roomID, clientID)
	if err != nil {
		h.logErr(err, clientID).Str("room_id", roomID).Msg("move relay rejected")
		return err
	}
	for _, other := range others {
		other.notify(&Event{Kind: EventMove, Room: roomID, Move: move})
	}
	return nil
}

func (h *Hub) notifyLeft(dep *Departure) {
	if dep.Seat == nil {
		return
	}
	for _, other := range dep.Others {
		other.notify(&Event{Kind: EventOpponentDisconnected, Room: dep.Room, Seat: dep.Seat})
	}
}

func (h *Hub) logErr(err error, clientID string) *zerolog.Event {
	ev := h.log.Warn()
	if IsContractViolation(err) {
		ev = h.log.Error()
	}
	return ev.Err(err).Str("client_id", clientID)
}
