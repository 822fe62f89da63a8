package core

import "testing"

func TestClientRegistryRegisterIsIdempotent(t *testing.T) {
	reg := NewClientRegistry(10)

	a, err := reg.Register("conn-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if a.Name != DefaultName {
		t.Fatalf("expected default name, got %q", a.Name)
	}

	b, err := reg.Register("conn-1")
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if a != b {
		t.Fatal("re-registering the same id must return the existing client")
	}
	if reg.Len() != 1 {
		t.Fatalf("expected 1 tracked client, got %d", reg.Len())
	}
}

func TestClientRegistryCapacity(t *testing.T) {
	reg := NewClientRegistry(2)

	if _, err := reg.Register("a"); err != nil {
		t.Fatalf("register a: %v", err)
	}
	if _, err := reg.Register("b"); err != nil {
		t.Fatalf("register b: %v", err)
	}

	_, err := reg.Register("c")
	if CodeOf(err) != ErrCodeCapacityExceeded {
		t.Fatalf("expected capacity_exceeded, got %v", err)
	}

	// Existing ids are still returned at capacity.
	if _, err := reg.Register("a"); err != nil {
		t.Fatalf("register existing at capacity: %v", err)
	}

	reg.Unregister("a")
	if _, err := reg.Register("c"); err != nil {
		t.Fatalf("register after unregister: %v", err)
	}
}

func TestClientRegistryUnregisterAbsent(t *testing.T) {
	reg := NewClientRegistry(2)
	reg.Unregister("ghost") // must not panic

	if c := reg.Lookup("ghost"); c != nil {
		t.Fatalf("expected nil lookup, got %+v", c)
	}
}
