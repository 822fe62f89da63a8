package http

import (
	"encoding/json"
	"fmt"

	"github.com/PolusVault/chess/internal/core"
	"github.com/PolusVault/chess/internal/proto"
)

// dispatch routes one inbound event to the Hub and builds the ack. A
// returned error means the payload violated the wire schema and the
// source must be treated as hostile. Unknown event types are dropped
// with a nil ack.
func (h *WSHandler) dispatch(client *core.Client, inbound proto.Inbound) (any, error) {
	switch inbound.Type {
	case proto.TypeCreateGame:
		var p proto.CreateGamePayload
		if err := decode(inbound, &p); err != nil {
			return nil, err
		}
		roomID, err := h.hub.CreateGame(client.ID, p.Name, core.Color(p.Color))
		if err != nil {
			return errorAck(inbound.Type, err), nil
		}
		return proto.SuccessAck(inbound.Type, roomID), nil

	case proto.TypeJoinGame:
		var p proto.JoinGamePayload
		if err := decode(inbound, &p); err != nil {
			return nil, err
		}
		opponent, err := h.hub.JoinGame(p.RoomID, client.ID, p.Name, "")
		if err != nil {
			return errorAck(inbound.Type, err), nil
		}
		return proto.SuccessAck(inbound.Type, opponent), nil

	case proto.TypeLeaveGame:
		var p proto.LeaveGamePayload
		if err := decode(inbound, &p); err != nil {
			return nil, err
		}
		if err := h.hub.LeaveGame(p.RoomID, client.ID); err != nil {
			return errorAck(inbound.Type, err), nil
		}
		return proto.SuccessAck(inbound.Type, nil), nil

	case proto.TypeMakeMove:
		var p proto.MakeMovePayload
		if err := decode(inbound, &p); err != nil {
			return nil, err
		}
		if err := h.hub.RelayMove(p.RoomID, client.ID, p.Move); err != nil {
			return errorAck(inbound.Type, err), nil
		}
		return proto.SuccessAck(inbound.Type, nil), nil

	default:
		h.log.Debug().Str("type", inbound.Type).Str("client_id", client.ID).Msg("unknown event type dropped")
		return nil, nil
	}
}

type validator interface {
	Validate() error
}

func decode(inbound proto.Inbound, p validator) error {
	if err := json.Unmarshal(inbound.Payload, p); err != nil {
		return fmt.Errorf("%w: %s", proto.ErrInvalidPayload, inbound.Type)
	}
	return p.Validate()
}

// errorAck converts a domain error into a failure envelope. Contract
// violations are never detailed to the caller.
func errorAck(eventType string, err error) proto.ErrorResponse {
	if core.IsContractViolation(err) {
		return proto.ErrorAck(eventType, "internal error")
	}
	return proto.ErrorAck(eventType, err.Error())
}

func broadcastFromEvent(event *core.Event) proto.Broadcast {
	switch event.Kind {
	case core.EventOpponentConnected:
		return proto.Broadcast{Type: proto.TypeOpponentConnected, Payload: event.Seat}
	case core.EventOpponentDisconnected:
		return proto.Broadcast{Type: proto.TypeOpponentDisconnected, Payload: event.Seat}
	case core.EventMove:
		return proto.Broadcast{Type: proto.TypeMakeMove, Payload: event.Move}
	default:
		return proto.Broadcast{Type: "event"}
	}
}
