// Package session orchestrates one game session: gather players over
// TCP, then run the turn loop against the engine until it finishes.
package session

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/netx"
	"unoserver/internal/protocol"
)

// ErrNotEnoughPlayers is returned when the accept window closes below
// the minimum seat count. The session never starts in that case.
var ErrNotEnoughPlayers = errors.New("not enough players connected")

type Config struct {
	Host          string
	Port          int
	MinPlayers    int
	MaxPlayers    int
	AcceptTimeout time.Duration
	TurnTimeout   time.Duration
}

func (c Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.MinPlayers < 2 {
		return fmt.Errorf("min players must be at least 2, got %d", c.MinPlayers)
	}
	if c.MaxPlayers > 10 {
		return fmt.Errorf("max players must be at most 10, got %d", c.MaxPlayers)
	}
	if c.MinPlayers > c.MaxPlayers {
		return fmt.Errorf("min players %d exceeds max players %d", c.MinPlayers, c.MaxPlayers)
	}
	if c.AcceptTimeout <= 0 || c.TurnTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// Server runs exactly one session start to finish.
type Server struct {
	Cfg       Config
	Log       *zap.SugaredLogger
	NewEngine func(players int) (game.Engine, error)
	Metrics   *Metrics

	// OnBroadcast is forwarded to the orchestrator; see Orchestrator.
	OnBroadcast func(*protocol.GameSnapshot)
}

// Run binds the listener and drives the session. It returns
// ErrNotEnoughPlayers (wrapped) when the accept window closes short.
func (s *Server) Run() error {
	ln, err := net.Listen("tcp", s.Cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.Cfg.Addr(), err)
	}
	return s.run(ln)
}

// run is split from Run so tests can supply their own listener.
func (s *Server) run(ln net.Listener) error {
	defer ln.Close()

	reg := netx.NewRegistry()
	acc := &netx.Acceptor{Log: s.Log, MaxSeats: s.Cfg.MaxPlayers, Window: s.Cfg.AcceptTimeout}
	s.Log.Infow("waiting for players",
		"addr", ln.Addr().String(), "min", s.Cfg.MinPlayers, "max", s.Cfg.MaxPlayers,
		"window", s.Cfg.AcceptTimeout)

	n := acc.Accept(ln, reg)
	if n < s.Cfg.MinPlayers {
		for _, c := range reg.Conns() {
			reg.Deregister(c)
		}
		return fmt.Errorf("%w: %d connected, need %d", ErrNotEnoughPlayers, n, s.Cfg.MinPlayers)
	}

	eng, err := s.NewEngine(n)
	if err != nil {
		return fmt.Errorf("create engine for %d players: %w", n, err)
	}

	for _, c := range reg.Conns() {
		if err := c.Send(protocol.Info(fmt.Sprintf("Game starting. You are Player %d", c.Seat))); err != nil {
			s.Log.Debugw("start notice failed", "seat", c.Seat, "err", err)
		}
	}

	o := &Orchestrator{
		Log:         s.Log,
		Reg:         reg,
		Eng:         eng,
		TurnTimeout: s.Cfg.TurnTimeout,
		Metrics:     s.Metrics,
		OnBroadcast: s.OnBroadcast,
	}
	s.Log.Infow("game starting", "players", n)
	o.Run()
	s.Log.Infow("game finished")

	for _, c := range reg.Conns() {
		reg.Deregister(c)
	}
	return nil
}
