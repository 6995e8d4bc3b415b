package netx

import (
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "accept deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

// fakeListener serves queued pipe connections, then times out once its
// deadline passes, mimicking *net.TCPListener.
type fakeListener struct {
	conns    chan net.Conn
	deadline time.Time
}

func newFakeListener(n int, t *testing.T) *fakeListener {
	l := &fakeListener{conns: make(chan net.Conn, n)}
	for i := 0; i < n; i++ {
		server, client := net.Pipe()
		t.Cleanup(func() { _ = server.Close(); _ = client.Close() })
		go drainServerFrames(client)
		l.conns <- server
	}
	return l
}

// drainServerFrames consumes whatever the server writes (welcome etc.)
// so pipe writes never block the code under test.
func drainServerFrames(c net.Conn) {
	buf := make([]byte, 1024)
	for {
		if _, err := c.Read(buf); err != nil {
			return
		}
	}
}

func (l *fakeListener) Accept() (net.Conn, error) {
	wait := time.Until(l.deadline)
	if wait <= 0 {
		return nil, timeoutError{}
	}
	select {
	case c := <-l.conns:
		return c, nil
	case <-time.After(wait):
		return nil, timeoutError{}
	}
}

func (l *fakeListener) SetDeadline(t time.Time) error { l.deadline = t; return nil }
func (l *fakeListener) Close() error                  { return nil }
func (l *fakeListener) Addr() net.Addr                { return &net.TCPAddr{} }

func TestAcceptorStopsAtMaxSeats(t *testing.T) {
	ln := newFakeListener(5, t)
	reg := NewRegistry()
	a := &Acceptor{Log: zap.NewNop().Sugar(), MaxSeats: 3, Window: time.Second}

	if got := a.Accept(ln, reg); got != 3 {
		t.Fatalf("accepted %d seats, want 3", got)
	}
	if len(ln.conns) != 2 {
		t.Fatalf("acceptor drained beyond the ceiling: %d left", len(ln.conns))
	}
}

func TestAcceptorStopsOnDeadline(t *testing.T) {
	ln := newFakeListener(1, t)
	reg := NewRegistry()
	a := &Acceptor{Log: zap.NewNop().Sugar(), MaxSeats: 6, Window: 50 * time.Millisecond}

	start := time.Now()
	got := a.Accept(ln, reg)
	if got != 1 {
		t.Fatalf("accepted %d seats, want 1", got)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("accept loop overran its window: %v", elapsed)
	}
}
