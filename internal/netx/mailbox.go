package netx

import (
	"sync"

	"unoserver/internal/protocol"
)

// Mailbox holds at most one pending inbound action per connection. A
// newer deposit overwrites an unconsumed older one; there is no queue.
// Written by the connection's handler, drained by the game loop.
type Mailbox struct {
	mu   sync.Mutex
	act  *protocol.Action
	wake chan struct{}
}

func NewMailbox() *Mailbox {
	return &Mailbox{wake: make(chan struct{}, 1)}
}

// Put replaces any pending action with act and pings the wake channel.
func (m *Mailbox) Put(act protocol.Action) {
	m.mu.Lock()
	m.act = &act
	m.mu.Unlock()
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Take drains the pending action, if any. Read-and-clear is atomic.
func (m *Mailbox) Take() (protocol.Action, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.act == nil {
		return protocol.Action{}, false
	}
	act := *m.act
	m.act = nil
	return act, true
}

// Wake returns the channel pinged on every deposit. Buffered at one, so
// a waiter never misses a deposit that raced ahead of its receive.
func (m *Mailbox) Wake() <-chan struct{} { return m.wake }
