package session

import "sync/atomic"

// Metrics counts session events for the ops endpoint. All methods are
// safe on a nil receiver so wiring metrics stays optional.
type Metrics struct {
	Turns         int64
	Timeouts      int64
	AIMoves       int64
	RejectedPlays int64
	Disconnects   int64
}

func (m *Metrics) IncTurn() {
	if m != nil {
		atomic.AddInt64(&m.Turns, 1)
	}
}

func (m *Metrics) IncTimeout() {
	if m != nil {
		atomic.AddInt64(&m.Timeouts, 1)
	}
}

func (m *Metrics) IncAIMove() {
	if m != nil {
		atomic.AddInt64(&m.AIMoves, 1)
	}
}

func (m *Metrics) IncRejected() {
	if m != nil {
		atomic.AddInt64(&m.RejectedPlays, 1)
	}
}

func (m *Metrics) IncDisconnect() {
	if m != nil {
		atomic.AddInt64(&m.Disconnects, 1)
	}
}

// Snapshot returns a read-only copy for HTTP output.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	return map[string]int64{
		"turns":          atomic.LoadInt64(&m.Turns),
		"timeouts":       atomic.LoadInt64(&m.Timeouts),
		"ai_moves":       atomic.LoadInt64(&m.AIMoves),
		"rejected_plays": atomic.LoadInt64(&m.RejectedPlays),
		"disconnects":    atomic.LoadInt64(&m.Disconnects),
	}
}
