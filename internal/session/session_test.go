package session

import (
	"errors"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"

	"unoserver/internal/game"
	"unoserver/internal/protocol"
)

type acceptTimeout struct{}

func (acceptTimeout) Error() string   { return "accept deadline exceeded" }
func (acceptTimeout) Timeout() bool   { return true }
func (acceptTimeout) Temporary() bool { return true }

// stubListener hands out queued connections, then times out.
type stubListener struct {
	conns    chan net.Conn
	deadline time.Time
}

func newStubListener(t *testing.T, clients int) (*stubListener, []net.Conn) {
	l := &stubListener{conns: make(chan net.Conn, clients)}
	remote := make([]net.Conn, 0, clients)
	for i := 0; i < clients; i++ {
		server, client := net.Pipe()
		t.Cleanup(func() { _ = server.Close(); _ = client.Close() })
		l.conns <- server
		remote = append(remote, client)
	}
	return l, remote
}

func (l *stubListener) Accept() (net.Conn, error) {
	wait := time.Until(l.deadline)
	if wait <= 0 {
		return nil, acceptTimeout{}
	}
	select {
	case c := <-l.conns:
		return c, nil
	case <-time.After(wait):
		return nil, acceptTimeout{}
	}
}

func (l *stubListener) SetDeadline(t time.Time) error { l.deadline = t; return nil }
func (l *stubListener) Close() error                  { return nil }
func (l *stubListener) Addr() net.Addr                { return &net.TCPAddr{} }

func testConfig() Config {
	return Config{
		Host:          "127.0.0.1",
		Port:          10000,
		MinPlayers:    2,
		MaxPlayers:    6,
		AcceptTimeout: 100 * time.Millisecond,
		TurnTimeout:   time.Second,
	}
}

func TestServerRefusesToStartShortOfMinimum(t *testing.T) {
	ln, remote := newStubListener(t, 1)
	go func() {
		// keep the lone client's pipe drained so the welcome write lands
		buf := make([]byte, 1024)
		for {
			if _, err := remote[0].Read(buf); err != nil {
				return
			}
		}
	}()

	s := &Server{
		Cfg: testConfig(),
		Log: zap.NewNop().Sugar(),
		NewEngine: func(n int) (game.Engine, error) {
			t.Fatal("engine created despite too few players")
			return nil, nil
		},
	}
	err := s.run(ln)
	if !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("err = %v, want ErrNotEnoughPlayers", err)
	}
}

func TestServerRunsFullSession(t *testing.T) {
	ln, remote := newStubListener(t, 2)
	eng := newFakeEngine(2, 2)

	tc0, w0 := startClient(remote[0], drawWhenPrompted)
	tc1, w1 := startClient(remote[1], drawWhenPrompted)

	s := &Server{
		Cfg:       testConfig(),
		Log:       zap.NewNop().Sugar(),
		NewEngine: func(n int) (game.Engine, error) { return eng, nil },
		Metrics:   &Metrics{},
	}
	done := make(chan error, 1)
	go func() { done <- s.run(ln) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("session did not finish")
	}
	<-w0
	<-w1

	msgs := tc0.msgs()
	tc1.msgs()

	sawStart := false
	for _, m := range msgs {
		if m.Type == protocol.MsgInfo && m.Text == "Game starting. You are Player 0" {
			sawStart = true
		}
	}
	if !sawStart {
		t.Error("seat 0 got no game-starting notice")
	}
	assertSeq(t, promptSeats(msgs), []int{0, 1})
	if len(eng.plays) != 2 {
		t.Errorf("plays = %+v", eng.plays)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := testConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
	bad := []func(*Config){
		func(c *Config) { c.Port = 0 },
		func(c *Config) { c.Port = 70000 },
		func(c *Config) { c.MinPlayers = 1 },
		func(c *Config) { c.MaxPlayers = 11 },
		func(c *Config) { c.MinPlayers = 7; c.MaxPlayers = 6 },
		func(c *Config) { c.AcceptTimeout = 0 },
		func(c *Config) { c.TurnTimeout = -time.Second },
	}
	for i, mutate := range bad {
		cfg := testConfig()
		mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("case %d: invalid config accepted: %+v", i, cfg)
		}
	}
}

func TestConfigAddr(t *testing.T) {
	cfg := testConfig()
	if got := cfg.Addr(); got != "127.0.0.1:10000" {
		t.Errorf("addr = %q", got)
	}
	cfg.Host = ""
	if got := cfg.Addr(); got != ":10000" {
		t.Errorf("addr = %q", got)
	}
}
