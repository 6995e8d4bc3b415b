// Package game defines the contract between the session loop and a card
// game engine. The engine is the sole authority on move legality, wild
// coloring, turn advancement and win detection; callers treat it as a
// synchronous resource and never invoke it concurrently.
package game

// SeatView exposes one seat's identity and hand. Card descriptors are
// the engine's own string representation, opaque to the caller.
type SeatView struct {
	ID   int
	Hand []string
}

type Engine interface {
	// CurrentPlayer returns the seat whose turn it is.
	CurrentPlayer() int
	// CurrentCard describes the face-up card.
	CurrentCard() string
	// IsActive reports whether the game is still running.
	IsActive() bool
	// Players returns all seats in seat order.
	Players() []SeatView
	// CanPlay reports whether the seat holds any playable card.
	CanPlay(seat int) bool
	// Playable reports whether the seat's card at cardIndex may be played.
	Playable(seat, cardIndex int) bool
	// Play applies a move for seat. A nil cardIndex means draw. newColor
	// is the requested color for a wild card; empty lets the engine pick.
	Play(seat int, cardIndex *int, newColor string) error
}
