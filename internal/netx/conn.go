package netx

import (
	"net"
	"sync"

	"github.com/google/uuid"
)

// Conn wraps one accepted stream with its seat index and mailbox. The
// seat index is assigned at accept time and never changes; the uuid is
// for log correlation only.
type Conn struct {
	ID   string
	Seat int

	raw  net.Conn
	wmu  sync.Mutex
	mbox *Mailbox

	closeOnce sync.Once
	done      chan struct{}
}

func newConn(raw net.Conn, seat int) *Conn {
	return &Conn{
		ID:   uuid.NewString(),
		Seat: seat,
		raw:  raw,
		mbox: NewMailbox(),
		done: make(chan struct{}),
	}
}

// Send encodes v and writes it as one frame. The write lock keeps frames
// from concurrent senders from interleaving mid-line.
func (c *Conn) Send(v any) error {
	frame, err := Encode(v)
	if err != nil {
		return err
	}
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err = c.raw.Write(frame)
	return err
}

func (c *Conn) Mailbox() *Mailbox { return c.mbox }

// Done is closed when the connection is torn down. Waiters on this seat's
// mailbox select on it to stop waiting for a peer that is gone.
func (c *Conn) Done() <-chan struct{} { return c.done }

func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.raw.Close()
	})
}

func (c *Conn) RemoteAddr() string { return c.raw.RemoteAddr().String() }
