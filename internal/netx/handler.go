package netx

import (
	"errors"
	"io"

	"go.uber.org/zap"

	"unoserver/internal/protocol"
)

// StartHandler runs the connection's handler goroutine: send the welcome
// frame telling the peer its seat, then loop decoding frames and
// depositing valid actions into the mailbox. On stream closure or a
// fatal read error the connection is deregistered and its seat plays on
// under AI control.
func StartHandler(log *zap.SugaredLogger, reg *Registry, c *Conn) {
	go func() {
		defer reg.Deregister(c)
		if err := c.Send(protocol.Welcome(c.Seat)); err != nil {
			log.Warnw("welcome failed", "seat", c.Seat, "conn", c.ID, "err", err)
			return
		}
		dec := NewDecoder(c.raw)
		for {
			var cm protocol.ClientMessage
			err := dec.Next(&cm)
			if errors.Is(err, ErrBadFrame) {
				// drop the frame, keep the connection
				log.Debugw("dropping frame", "seat", c.Seat, "err", err)
				continue
			}
			if err != nil {
				if err != io.EOF {
					log.Debugw("read error", "seat", c.Seat, "err", err)
				}
				log.Infow("client disconnected", "seat", c.Seat, "conn", c.ID)
				return
			}
			act, ok := protocol.ParseAction(cm)
			if !ok {
				log.Debugw("ignoring message", "seat", c.Seat, "type", cm.Type, "action", cm.Action)
				continue
			}
			c.mbox.Put(act)
		}
	}()
}
