package netx

import (
	"net"
	"sort"
	"sync"
)

// Registry is the set of live connections, keyed by seat. Seat indexes
// are handed out sequentially at accept time; removing a connection
// never renumbers the others. All access goes through the mutex, so the
// game loop can iterate while handlers register and deregister.
type Registry struct {
	mu    sync.RWMutex
	seats map[int]*Conn
	next  int
}

func NewRegistry() *Registry {
	return &Registry{seats: make(map[int]*Conn)}
}

// Register wraps raw, assigns it the next seat index, and records it.
func (r *Registry) Register(raw net.Conn) *Conn {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := newConn(raw, r.next)
	r.seats[r.next] = c
	r.next++
	return c
}

// Deregister removes c and closes it. Idempotent; a seat already vacated
// or re-checked by a stale caller is left alone.
func (r *Registry) Deregister(c *Conn) {
	r.mu.Lock()
	if cur, ok := r.seats[c.Seat]; ok && cur == c {
		delete(r.seats, c.Seat)
	}
	r.mu.Unlock()
	c.Close()
}

// Seat returns the live connection for a seat, if any.
func (r *Registry) Seat(i int) (*Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.seats[i]
	return c, ok
}

// Conns returns a seat-ordered copy for iteration, so broadcast never
// holds the lock while writing to sockets.
func (r *Registry) Conns() []*Conn {
	r.mu.RLock()
	out := make([]*Conn, 0, len(r.seats))
	for _, c := range r.seats {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Seat < out[j].Seat })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seats)
}
