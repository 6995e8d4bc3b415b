package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/netx"
	"unoserver/internal/protocol"
)

type awaitResult int

const (
	gotAction awaitResult = iota
	timedOut
	disconnected
)

// Orchestrator is the single-threaded turn loop. It is the only caller
// of the engine; handlers only ever touch their own mailboxes.
type Orchestrator struct {
	Log         *zap.SugaredLogger
	Reg         *netx.Registry
	Eng         game.Engine
	TurnTimeout time.Duration
	Metrics     *Metrics

	// OnBroadcast, when set, receives the redacted (unaddressed) copy of
	// every state broadcast. Used by the spectator feed.
	OnBroadcast func(*protocol.GameSnapshot)
}

// Run drives turns until the engine goes inactive: broadcast state,
// announce whose turn it is, wait (bounded) for that seat's action,
// apply it or fall back to an automatic move. A rejected play does not
// advance the turn; the loop simply re-prompts the same seat.
func (o *Orchestrator) Run() {
	for o.Eng.IsActive() {
		o.Metrics.IncTurn()
		o.broadcastState()

		seat := o.Eng.CurrentPlayer()
		o.broadcast(protocol.Prompt(seat))

		conn, ok := o.Reg.Seat(seat)
		if !ok {
			o.playFallback(seat)
			continue
		}

		act, res := o.await(conn)
		switch res {
		case gotAction:
			o.apply(seat, act, conn)
		case timedOut:
			o.Metrics.IncTimeout()
			o.Log.Infow("turn timed out", "seat", seat)
			if err := conn.Send(protocol.Info("Turn timed out, drawing a card.")); err != nil {
				o.Log.Debugw("timeout notice failed", "seat", seat, "err", err)
			}
			o.apply(seat, protocol.Action{Kind: protocol.ActDraw}, conn)
		case disconnected:
			// the registry has already dropped the seat; the next
			// iteration re-prompts and takes the fallback path
			o.Metrics.IncDisconnect()
			o.Log.Infow("seat lost its connection mid-turn", "seat", seat)
		}
	}

	final := BuildSnapshot(o.Eng, -1)
	o.broadcast(protocol.State(final))
	o.broadcast(protocol.Info("Game finished."))
	if o.OnBroadcast != nil {
		o.OnBroadcast(final)
	}
}

// await blocks until the seat's mailbox holds an action, the connection
// dies, or the turn timeout fires, whichever is first.
func (o *Orchestrator) await(c *netx.Conn) (protocol.Action, awaitResult) {
	if act, ok := c.Mailbox().Take(); ok {
		return act, gotAction
	}
	timer := time.NewTimer(o.TurnTimeout)
	defer timer.Stop()
	for {
		select {
		case <-c.Mailbox().Wake():
			if act, ok := c.Mailbox().Take(); ok {
				return act, gotAction
			}
			// stale wake from a deposit consumed before the timer started
		case <-c.Done():
			return protocol.Action{}, disconnected
		case <-timer.C:
			return protocol.Action{}, timedOut
		}
	}
}

func (o *Orchestrator) apply(seat int, act protocol.Action, c *netx.Conn) {
	var err error
	switch act.Kind {
	case protocol.ActPlay:
		idx := act.CardIndex
		o.Log.Infow("play", "seat", seat, "card_index", idx, "new_color", act.NewColor)
		err = o.Eng.Play(seat, &idx, act.NewColor)
	case protocol.ActDraw:
		o.Log.Infow("draw", "seat", seat)
		err = o.Eng.Play(seat, nil, "")
	}
	if err != nil {
		o.Metrics.IncRejected()
		o.Log.Infow("action rejected", "seat", seat, "err", err)
		if serr := c.Send(protocol.Info(fmt.Sprintf("Error processing action: %v", err))); serr != nil {
			o.Log.Debugw("rejection notice failed", "seat", seat, "err", serr)
		}
	}
}

// playFallback makes the automatic move for a seat with no live
// connection: the first playable card in hand order with no color
// override, or a draw. Never blocks.
func (o *Orchestrator) playFallback(seat int) {
	o.Metrics.IncAIMove()
	if o.Eng.CanPlay(seat) {
		views := o.Eng.Players()
		for i := range views[seat].Hand {
			if o.Eng.Playable(seat, i) {
				idx := i
				o.Log.Infow("auto play", "seat", seat, "card_index", idx)
				if err := o.Eng.Play(seat, &idx, ""); err != nil {
					o.Log.Warnw("auto play rejected", "seat", seat, "err", err)
				}
				return
			}
		}
	}
	o.Log.Infow("auto draw", "seat", seat)
	if err := o.Eng.Play(seat, nil, ""); err != nil {
		o.Log.Warnw("auto draw rejected", "seat", seat, "err", err)
	}
}

// broadcastState sends each registered seat its own tailored snapshot.
// Send failures are logged and left to that connection's handler to
// clean up; they never abort the loop.
func (o *Orchestrator) broadcastState() {
	for _, c := range o.Reg.Conns() {
		if err := c.Send(protocol.State(BuildSnapshot(o.Eng, c.Seat))); err != nil {
			o.Log.Debugw("state send failed", "seat", c.Seat, "err", err)
		}
	}
	if o.OnBroadcast != nil {
		o.OnBroadcast(BuildSnapshot(o.Eng, -1))
	}
}

func (o *Orchestrator) broadcast(msg protocol.ServerMessage) {
	for _, c := range o.Reg.Conns() {
		if err := c.Send(msg); err != nil {
			o.Log.Debugw("broadcast failed", "seat", c.Seat, "type", msg.Type, "err", err)
		}
	}
}
