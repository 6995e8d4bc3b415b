package netx

import (
	"net"
	"testing"
)

func pipeConn(t *testing.T) net.Conn {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() { _ = a.Close(); _ = b.Close() })
	return a
}

func TestRegistrySeatAssignmentOrder(t *testing.T) {
	reg := NewRegistry()
	for i := 0; i < 3; i++ {
		c := reg.Register(pipeConn(t))
		if c.Seat != i {
			t.Fatalf("seat %d assigned as %d", i, c.Seat)
		}
	}
	if reg.Len() != 3 {
		t.Fatalf("len = %d", reg.Len())
	}
}

func TestRegistryDeregisterKeepsSeatNumbers(t *testing.T) {
	reg := NewRegistry()
	c0 := reg.Register(pipeConn(t))
	c1 := reg.Register(pipeConn(t))
	c2 := reg.Register(pipeConn(t))

	reg.Deregister(c1)

	if _, ok := reg.Seat(1); ok {
		t.Fatal("seat 1 still registered after deregister")
	}
	if c, ok := reg.Seat(2); !ok || c != c2 {
		t.Fatal("seat 2 renumbered by removal")
	}
	conns := reg.Conns()
	if len(conns) != 2 || conns[0] != c0 || conns[1] != c2 {
		t.Fatalf("unexpected iteration order: %v", conns)
	}

	// a seat freed mid-game is never reissued
	c3 := reg.Register(pipeConn(t))
	if c3.Seat != 3 {
		t.Fatalf("freed seat reissued: got %d", c3.Seat)
	}
}

func TestRegistryDeregisterIdempotent(t *testing.T) {
	reg := NewRegistry()
	c := reg.Register(pipeConn(t))
	reg.Deregister(c)
	reg.Deregister(c) // must not panic or disturb other state

	select {
	case <-c.Done():
	default:
		t.Fatal("done channel not closed on deregister")
	}
}
