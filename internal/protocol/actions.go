package protocol

type ActionKind int

const (
	ActPlay ActionKind = iota
	ActDraw
)

// Action is a validated client move, ready for the game loop.
type Action struct {
	Kind      ActionKind
	CardIndex int
	NewColor  string
}

// ParseAction converts a decoded ClientMessage into an Action. It returns
// false for anything that is not a well-formed play or draw: unknown
// types, the no-op "join" action, or a play without a card index. Such
// messages are dropped, never queued.
func ParseAction(m ClientMessage) (Action, bool) {
	if m.Type != MsgAction {
		return Action{}, false
	}
	switch m.Action {
	case "play":
		if m.CardIndex == nil {
			return Action{}, false
		}
		a := Action{Kind: ActPlay, CardIndex: *m.CardIndex}
		if m.NewColor != nil {
			a.NewColor = *m.NewColor
		}
		return a, true
	case "draw":
		return Action{Kind: ActDraw}, true
	default:
		return Action{}, false
	}
}
