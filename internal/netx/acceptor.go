package netx

import (
	"errors"
	"net"
	"time"

	"go.uber.org/zap"
)

// deadliner is satisfied by *net.TCPListener and by test listeners.
type deadliner interface {
	SetDeadline(time.Time) error
}

// Acceptor fills a Registry from a listener until either MaxSeats
// connections have been accepted or the accept window closes. Each
// accepted connection gets its handler started before the next accept.
type Acceptor struct {
	Log      *zap.SugaredLogger
	MaxSeats int
	Window   time.Duration
}

// Accept runs the bounded accept loop and returns the number of seats
// filled. It does not close the listener.
func (a *Acceptor) Accept(ln net.Listener, reg *Registry) int {
	deadline := time.Now().Add(a.Window)
	if d, ok := ln.(deadliner); ok {
		_ = d.SetDeadline(deadline)
	}
	for reg.Len() < a.MaxSeats {
		raw, err := ln.Accept()
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				a.Log.Infow("accept window closed", "seats", reg.Len())
				break
			}
			if errors.Is(err, net.ErrClosed) {
				break
			}
			a.Log.Warnw("accept error", "err", err)
			if time.Now().After(deadline) {
				break
			}
			continue
		}
		c := reg.Register(raw)
		a.Log.Infow("accepted", "addr", c.RemoteAddr(), "seat", c.Seat, "conn", c.ID)
		StartHandler(a.Log, reg, c)
	}
	return reg.Len()
}
