// Package uno implements the UNO rules engine behind the game.Engine
// contract: the 108-card deck, playability, action-card effects, wild
// coloring and win detection.
package uno

type Color string

const (
	Red    Color = "red"
	Yellow Color = "yellow"
	Green  Color = "green"
	Blue   Color = "blue"
	Black  Color = "black"
)

// colors a wild card may be recolored to, in tiebreak order
var wildColors = [4]Color{Red, Yellow, Green, Blue}

type Value string

const (
	Skip     Value = "skip"
	Reverse  Value = "reverse"
	DrawTwo  Value = "+2"
	Wild     Value = "wildcard"
	WildFour Value = "+4"
)

type Card struct {
	Color Color
	Value Value
}

func (c Card) String() string { return string(c.Color) + " " + string(c.Value) }

func (c Card) IsWild() bool { return c.Color == Black }

func (c Card) isNumber() bool {
	return len(c.Value) == 1 && c.Value[0] >= '0' && c.Value[0] <= '9'
}

// playableOn reports whether c may be laid on a face-up card showing
// color and value. Wilds always match; everything else matches on the
// effective color or the printed value.
func (c Card) playableOn(color Color, value Value) bool {
	return c.IsWild() || c.Color == color || c.Value == value
}
