// Package proto defines the JSON wire protocol spoken over the game
// socket: inbound event envelopes, their payload schemas with boundary
// validation, and the outbound ack/broadcast envelopes.
package proto

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound event types.
const (
	TypeCreateGame = "create-game"
	TypeJoinGame   = "join-game"
	TypeLeaveGame  = "leave-game"
	TypeMakeMove   = "make-move"
)

// Outbound broadcast types.
const (
	TypeOpponentConnected    = "opponent-connected"
	TypeOpponentDisconnected = "opponent-disconnected"
)

// Field length ceilings. Oversized fields are treated as hostile input.
const (
	maxNameLen      = 20
	maxRoomIDLen    = 10
	maxMoveFieldLen = 3
)

// ErrInvalidPayload marks input that violates the wire schema. The
// transport bans the source on sight of it.
var ErrInvalidPayload = errors.New("invalid payload")

func invalid(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, field)
}

// Inbound is the envelope for events coming from the client.
type Inbound struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// CreateGamePayload asks for a new room with the requested seat color.
type CreateGamePayload struct {
	Color string `json:"color"`
	Name  string `json:"name"`
}

func (p CreateGamePayload) Validate() error {
	if p.Color != "w" && p.Color != "b" {
		return invalid("color")
	}
	if len(p.Name) >= maxNameLen {
		return invalid("name")
	}
	return nil
}

// JoinGamePayload asks to take a free seat in an existing room.
type JoinGamePayload struct {
	RoomID string `json:"room_id"`
	Name   string `json:"name"`
}

func (p JoinGamePayload) Validate() error {
	if len(p.RoomID) >= maxRoomIDLen {
		return invalid("room_id")
	}
	if len(p.Name) >= maxNameLen {
		return invalid("name")
	}
	return nil
}

// LeaveGamePayload vacates the client's seat in the room.
type LeaveGamePayload struct {
	RoomID string `json:"room_id"`
}

func (p LeaveGamePayload) Validate() error {
	if len(p.RoomID) >= maxRoomIDLen {
		return invalid("room_id")
	}
	return nil
}

// Move is an opaque chess move; the server never rule-checks it.
type Move struct {
	From           string `json:"from"`
	To             string `json:"to"`
	PromotionPiece string `json:"promotion_piece,omitempty"`
}

// MakeMovePayload relays a move to the other occupant of the room. The
// move is kept raw so it reaches the opponent byte-for-byte.
type MakeMovePayload struct {
	RoomID string          `json:"room_id"`
	Move   json.RawMessage `json:"move"`
}

func (p MakeMovePayload) Validate() error {
	if len(p.RoomID) >= maxRoomIDLen {
		return invalid("room_id")
	}

	var m Move
	if err := json.Unmarshal(p.Move, &m); err != nil {
		return invalid("move")
	}
	if len(m.From) >= maxMoveFieldLen {
		return invalid("move.from")
	}
	if len(m.To) >= maxMoveFieldLen {
		return invalid("move.to")
	}
	if len(m.PromotionPiece) >= maxMoveFieldLen {
		return invalid("move.promotion_piece")
	}
	return nil
}

// SuccessResponse is the uniform envelope for a successful ack. The
// payload is always present, null when the event yields no data.
type SuccessResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Payload any    `json:"payload"`
}

// ErrorResponse is the uniform envelope for a failed ack.
type ErrorResponse struct {
	Type    string `json:"type"`
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
}

// SuccessAck builds a success response for the given event type.
func SuccessAck(eventType string, payload any) SuccessResponse {
	return SuccessResponse{Type: eventType, Success: true, Payload: payload}
}

// ErrorAck builds a failure response for the given event type.
func ErrorAck(eventType, reason string) ErrorResponse {
	return ErrorResponse{Type: eventType, Success: false, Reason: reason}
}

// Broadcast is the envelope for server-initiated events.
type Broadcast struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
