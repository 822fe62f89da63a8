package core

import (
	"encoding/json"
	"testing"
)

func TestHubCreateJoinBroadcastsOpponentConnected(t *testing.T) {
	hub := newTestHub()

	alice, err := hub.Connect("conn-a")
	if err != nil {
		t.Fatalf("connect alice: %v", err)
	}
	bob, err := hub.Connect("conn-b")
	if err != nil {
		t.Fatalf("connect bob: %v", err)
	}

	roomID, err := hub.CreateGame(alice.ID, "alice", ColorWhite)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if roomID == "" {
		t.Fatal("empty room id")
	}

	opponent, err := hub.JoinGame(roomID, bob.ID, "bob", "")
	if err != nil {
		t.Fatalf("join game: %v", err)
	}
	if opponent == nil || opponent.Name != "alice" || opponent.Color != ColorWhite {
		t.Fatalf("unexpected join ack opponent: %+v", opponent)
	}

	ev := mustEvent(t, alice.Events, EventOpponentConnected)
	if ev.Seat == nil || ev.Seat.Name != "bob" || ev.Seat.Color != ColorBlack {
		t.Fatalf("unexpected opponent-connected seat: %+v", ev.Seat)
	}
	if ev.Room != roomID {
		t.Fatalf("event for wrong room: %s", ev.Room)
	}
	mustNoEvent(t, bob.Events)
}

func TestHubLeaveBroadcastsOpponentDisconnected(t *testing.T) {
	hub := newTestHub()

	alice, _ := hub.Connect("conn-a")
	bob, _ := hub.Connect("conn-b")

	roomID, _ := hub.CreateGame(alice.ID, "alice", ColorWhite)
	if _, err := hub.JoinGame(roomID, bob.ID, "bob", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	mustEvent(t, alice.Events, EventOpponentConnected)

	if err := hub.LeaveGame(roomID, alice.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}

	ev := mustEvent(t, bob.Events, EventOpponentDisconnected)
	if ev.Seat == nil || ev.Seat.Name != "alice" || ev.Seat.Color != ColorWhite {
		t.Fatalf("unexpected opponent-disconnected seat: %+v", ev.Seat)
	}
	if hub.rooms.Lookup(roomID) == nil {
		t.Fatal("room with one remaining occupant must survive")
	}

	if err := hub.LeaveGame(roomID, bob.ID); err != nil {
		t.Fatalf("last leave: %v", err)
	}
	if hub.rooms.Lookup(roomID) != nil {
		t.Fatal("room must be deleted after the last occupant leaves")
	}
}

func TestHubDisconnectNotifiesEveryRoom(t *testing.T) {
	hub := newTestHub()

	alice, _ := hub.Connect("conn-a")
	bob, _ := hub.Connect("conn-b")
	carol, _ := hub.Connect("conn-c")

	r1, _ := hub.CreateGame(alice.ID, "alice", ColorWhite)
	r2, _ := hub.CreateGame(alice.ID, "", ColorBlack)
	hub.JoinGame(r1, bob.ID, "bob", "")
	hub.JoinGame(r2, carol.ID, "carol", "")

	hub.Disconnect(alice.ID)

	if ev := mustEvent(t, bob.Events, EventOpponentDisconnected); ev.Room != r1 {
		t.Fatalf("bob notified about wrong room: %s", ev.Room)
	}
	if ev := mustEvent(t, carol.Events, EventOpponentDisconnected); ev.Room != r2 {
		t.Fatalf("carol notified about wrong room: %s", ev.Room)
	}
	if hub.clients.Lookup(alice.ID) != nil {
		t.Fatal("disconnected client still registered")
	}
	if hub.rooms.Lookup(r1) == nil || hub.rooms.Lookup(r2) == nil {
		t.Fatal("rooms with remaining occupants must survive")
	}
}

func TestHubQuotaEndToEnd(t *testing.T) {
	hub := newTestHub()
	alice, _ := hub.Connect("conn-a")

	for i := 0; i < DefaultMaxOwnedRooms; i++ {
		if _, err := hub.CreateGame(alice.ID, "alice", ColorWhite); err != nil {
			t.Fatalf("create %d: %v", i+1, err)
		}
	}

	_, err := hub.CreateGame(alice.ID, "alice", ColorWhite)
	if CodeOf(err) != ErrCodeQuotaExceeded {
		t.Fatalf("expected quota_exceeded on 6th create, got %v", err)
	}
}

func TestHubRelayMove(t *testing.T) {
	hub := newTestHub()

	alice, _ := hub.Connect("conn-a")
	bob, _ := hub.Connect("conn-b")

	roomID, _ := hub.CreateGame(alice.ID, "alice", ColorWhite)
	hub.JoinGame(roomID, bob.ID, "bob", "")
	mustEvent(t, alice.Events, EventOpponentConnected)

	move := json.RawMessage(`{"from":"e2","to":"e4"}`)
	if err := hub.RelayMove(roomID, alice.ID, move); err != nil {
		t.Fatalf("relay: %v", err)
	}

	ev := mustEvent(t, bob.Events, EventMove)
	if string(ev.Move) != string(move) {
		t.Fatalf("move not relayed verbatim: %s", ev.Move)
	}
	mustNoEvent(t, alice.Events)

	if err := hub.RelayMove("ghost", alice.ID, move); CodeOf(err) != ErrCodeRoomNotFound {
		t.Fatalf("expected room_not_found, got %v", err)
	}
}

func TestHubConnectCapacity(t *testing.T) {
	hub := NewHub(1, 0, nil)

	if _, err := hub.Connect("a"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := hub.Connect("b"); CodeOf(err) != ErrCodeCapacityExceeded {
		t.Fatalf("expected capacity_exceeded, got %v", err)
	}

	hub.Disconnect("a")
	if _, err := hub.Connect("b"); err != nil {
		t.Fatalf("connect after disconnect: %v", err)
	}
}
