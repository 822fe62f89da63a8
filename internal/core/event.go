package core

import "encoding/json"

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventOpponentConnected notifies a seated player that someone took
	// the other seat in their room.
	EventOpponentConnected EventKind = iota
	// EventOpponentDisconnected notifies the remaining player that their
	// opponent left the room, explicitly or by dropping the connection.
	EventOpponentDisconnected
	// EventMove carries an opponent's move, relayed verbatim.
	EventMove
)

// Event is sent to clients to describe what happened in their room.
type Event struct {
	Kind EventKind
	Room string
	Seat *SeatInfo       // seat of the player the event is about
	Move json.RawMessage // non-nil for EventMove only
}
