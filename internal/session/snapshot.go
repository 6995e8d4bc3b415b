package session

import (
	"unoserver/internal/game"
	"unoserver/internal/protocol"
)

// BuildSnapshot projects the engine's state into the wire form for one
// recipient. recipient < 0 means unaddressed: hand counts only. Only the
// recipient's own hand is ever included; snapshots are rebuilt fresh
// each turn, never cached.
func BuildSnapshot(eng game.Engine, recipient int) *protocol.GameSnapshot {
	views := eng.Players()
	players := make([]protocol.SeatSummary, len(views))
	for i, v := range views {
		players[i] = protocol.SeatSummary{ID: v.ID, HandCount: len(v.Hand)}
	}
	snap := &protocol.GameSnapshot{
		Players:            players,
		CurrentCard:        eng.CurrentCard(),
		CurrentPlayerIndex: eng.CurrentPlayer(),
		IsActive:           eng.IsActive(),
	}
	if recipient >= 0 && recipient < len(views) {
		snap.YourHand = append([]string(nil), views[recipient].Hand...)
	}
	return snap
}
