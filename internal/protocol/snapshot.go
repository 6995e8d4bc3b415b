package protocol

// SeatSummary is the public view of one seat: identity and card count
// only, never hand contents.
type SeatSummary struct {
	ID        int `json:"id"`
	HandCount int `json:"hand_count"`
}

// GameSnapshot is the wire-level state projection sent each turn.
// YourHand is present only on the copy addressed to its owner.
type GameSnapshot struct {
	Players            []SeatSummary `json:"players"`
	CurrentCard        string        `json:"current_card"`
	CurrentPlayerIndex int           `json:"current_player_index"`
	IsActive           bool          `json:"is_active"`
	YourHand           []string      `json:"your_hand,omitempty"`
}
