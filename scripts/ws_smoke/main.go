// Command ws_smoke drives a two-player game flow against a running
// server: one connection creates a room, a second joins it and sends a
// move, and both print what they receive.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/PolusVault/chess/internal/proto"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/chess/socket", "WebSocket address")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	host, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial host: %w", err)
	}
	defer host.Close(websocket.StatusNormalClosure, "bye")

	send := func(conn *websocket.Conn, eventType string, payload any) error {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", eventType, err)
		}
		if err := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Payload: raw}); err != nil {
			return fmt.Errorf("send %s: %w", eventType, err)
		}
		return nil
	}

	readAck := func(conn *websocket.Conn) (map[string]any, error) {
		var ack map[string]any
		if err := wsjson.Read(ctx, conn, &ack); err != nil {
			return nil, fmt.Errorf("read ack: %w", err)
		}
		return ack, nil
	}

	if err := send(host, proto.TypeCreateGame, proto.CreateGamePayload{Color: "w", Name: "smoke-host"}); err != nil {
		return err
	}
	ack, err := readAck(host)
	if err != nil {
		return err
	}
	roomID, _ := ack["payload"].(string)
	fmt.Printf("created room %q\n", roomID)
	if roomID == "" {
		return fmt.Errorf("create-game failed: %v", ack)
	}

	guest, _, err := websocket.Dial(ctx, *addr, nil)
	if err != nil {
		return fmt.Errorf("dial guest: %w", err)
	}
	defer guest.Close(websocket.StatusNormalClosure, "bye")

	if err := send(guest, proto.TypeJoinGame, proto.JoinGamePayload{RoomID: roomID, Name: "smoke-guest"}); err != nil {
		return err
	}
	ack, err = readAck(guest)
	if err != nil {
		return err
	}
	fmt.Printf("guest joined, opponent: %v\n", ack["payload"])

	// The host should see opponent-connected before the move arrives.
	event, err := readAck(host)
	if err != nil {
		return err
	}
	fmt.Printf("host received: %v\n", event)

	move, _ := json.Marshal(proto.Move{From: "e7", To: "e5"})
	if err := send(guest, proto.TypeMakeMove, proto.MakeMovePayload{RoomID: roomID, Move: move}); err != nil {
		return err
	}

	event, err = readAck(host)
	if err != nil {
		return err
	}
	fmt.Printf("host received: %v\n", event)
	return nil
}
