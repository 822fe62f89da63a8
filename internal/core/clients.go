package core

import "sync"

// DefaultMaxClients caps the number of simultaneously tracked clients.
const DefaultMaxClients = 500

// ClientRegistry owns every live Client record, keyed by connection id.
// All operations are safe for concurrent use.
type ClientRegistry struct {
	mu      sync.Mutex
	clients map[string]*Client
	limit   int
}

// NewClientRegistry builds a registry holding at most limit clients.
func NewClientRegistry(limit int) *ClientRegistry {
	if limit <= 0 {
		limit = DefaultMaxClients
	}
	return &ClientRegistry{
		clients: make(map[string]*Client),
		limit:   limit,
	}
}

// Register creates a client for the connection id, or returns the
// existing one. Fails with capacity_exceeded at the client ceiling.
func (r *ClientRegistry) Register(id string) (*Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	if len(r.clients) >= r.limit {
		return nil, coreError(ErrCodeCapacityExceeded, "client limit exceeded")
	}

	c := NewClient(id)
	r.clients[id] = c
	return c, nil
}

// Lookup returns the client for the connection id, or nil.
func (r *ClientRegistry) Lookup(id string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clients[id]
}

// Unregister removes the client. No-op if absent.
func (r *ClientRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// Len reports the number of tracked clients.
func (r *ClientRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
