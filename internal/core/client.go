package core

// DefaultName is assigned to clients that never introduce themselves.
const DefaultName = "anonymous"

// Client is one connected player as seen by the core layer. Its identity
// is the connection id and lives exactly as long as the connection.
type Client struct {
	ID     string
	Name   string
	Events chan *Event

	// Number of rooms this client currently owns. Accounting only;
	// the room records themselves belong to the RoomRegistry.
	ownedRooms int
}

// NewClient constructs a client with an initialized event channel.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Name:   DefaultName,
		Events: make(chan *Event, 8),
	}
}

func (c *Client) notify(ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
