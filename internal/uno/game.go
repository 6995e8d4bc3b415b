package uno

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"unoserver/internal/game"
)

var (
	ErrGameOver     = errors.New("game is over")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrBadCardIndex = errors.New("card index out of range")
	ErrNotPlayable  = errors.New("card cannot be played on the current card")
	ErrPlayerCount  = errors.New("player count must be between 2 and 15")
)

type player struct {
	id   int
	hand []Card
}

// Game holds one UNO session's authoritative state. It satisfies
// game.Engine and expects single-threaded use.
type Game struct {
	rng     *rand.Rand
	players []*player
	draw    []Card
	discard []Card

	top    Card
	color  Color // effective color; differs from top.Color after a wild
	turn   int
	dir    int
	active bool
	winner int
}

// New deals a game for n players with a time-based shuffle.
func New(n int) (*Game, error) {
	return NewWithSeed(n, time.Now().UnixNano())
}

// NewWithSeed deals deterministically; used by tests.
func NewWithSeed(n int, seed int64) (*Game, error) {
	if n < 2 || n > 15 {
		return nil, fmt.Errorf("%w: %d", ErrPlayerCount, n)
	}
	g := &Game{
		rng:    rand.New(rand.NewSource(seed)),
		dir:    1,
		active: true,
		winner: -1,
	}
	g.draw = newDeck(g.rng)
	for i := 0; i < n; i++ {
		p := &player{id: i}
		for j := 0; j < 7; j++ {
			c, _ := g.deal()
			p.hand = append(p.hand, c)
		}
		g.players = append(g.players, p)
	}
	// flip cards until a number card starts the discard pile; action and
	// wild cards go back under the draw pile. Bounded so a pile with no
	// number cards left still produces a start card.
	for tries := len(g.draw); ; tries-- {
		c, _ := g.deal()
		if c.isNumber() || tries <= 0 {
			g.top = c
			g.color = c.Color
			g.discard = append(g.discard, c)
			break
		}
		g.draw = append([]Card{c}, g.draw...)
	}
	return g, nil
}

func (g *Game) CurrentPlayer() int { return g.turn }

func (g *Game) IsActive() bool { return g.active }

// Winner returns the seat that emptied its hand, or -1 while the game
// is still running.
func (g *Game) Winner() int { return g.winner }

// CurrentCard shows the face-up card. A recolored wild reads with its
// chosen color, e.g. "red wildcard".
func (g *Game) CurrentCard() string {
	if g.top.IsWild() && g.color != Black {
		return string(g.color) + " " + string(g.top.Value)
	}
	return g.top.String()
}

func (g *Game) Players() []game.SeatView {
	views := make([]game.SeatView, len(g.players))
	for i, p := range g.players {
		hand := make([]string, len(p.hand))
		for j, c := range p.hand {
			hand[j] = c.String()
		}
		views[i] = game.SeatView{ID: p.id, Hand: hand}
	}
	return views
}

func (g *Game) CanPlay(seat int) bool {
	if seat < 0 || seat >= len(g.players) {
		return false
	}
	for i := range g.players[seat].hand {
		if g.Playable(seat, i) {
			return true
		}
	}
	return false
}

func (g *Game) Playable(seat, cardIndex int) bool {
	if seat < 0 || seat >= len(g.players) {
		return false
	}
	hand := g.players[seat].hand
	if cardIndex < 0 || cardIndex >= len(hand) {
		return false
	}
	return hand[cardIndex].playableOn(g.color, g.top.Value)
}

// Play applies one move for seat: a card play when cardIndex is set, a
// draw otherwise. A rejected play leaves all state untouched, including
// whose turn it is.
func (g *Game) Play(seat int, cardIndex *int, newColor string) error {
	if !g.active {
		return ErrGameOver
	}
	if seat < 0 || seat >= len(g.players) {
		return fmt.Errorf("%w: no seat %d", ErrNotYourTurn, seat)
	}
	if seat != g.turn {
		return fmt.Errorf("%w: player %d moved on player %d's turn", ErrNotYourTurn, seat, g.turn)
	}
	p := g.players[seat]

	if cardIndex == nil {
		if c, ok := g.deal(); ok {
			p.hand = append(p.hand, c)
		}
		g.advance(1)
		return nil
	}

	idx := *cardIndex
	if idx < 0 || idx >= len(p.hand) {
		return fmt.Errorf("%w: %d", ErrBadCardIndex, idx)
	}
	c := p.hand[idx]
	if !c.playableOn(g.color, g.top.Value) {
		return fmt.Errorf("%w: %s on %s", ErrNotPlayable, c, g.CurrentCard())
	}

	p.hand = append(p.hand[:idx], p.hand[idx+1:]...)
	g.top = c
	g.discard = append(g.discard, c)
	if c.IsWild() {
		g.color = g.pickWildColor(p, newColor)
	} else {
		g.color = c.Color
	}

	if len(p.hand) == 0 {
		g.active = false
		g.winner = seat
		return nil
	}

	switch c.Value {
	case Skip:
		g.advance(2)
	case Reverse:
		g.dir = -g.dir
		if len(g.players) == 2 {
			// two-handed reverse acts as a skip
			g.advance(2)
		} else {
			g.advance(1)
		}
	case DrawTwo:
		g.penalize(g.seatAfter(1), 2)
		g.advance(2)
	case WildFour:
		g.penalize(g.seatAfter(1), 4)
		g.advance(2)
	default:
		g.advance(1)
	}
	return nil
}

// pickWildColor honors a valid requested color, otherwise defaults to
// the color the player holds most of.
func (g *Game) pickWildColor(p *player, requested string) Color {
	for _, col := range wildColors {
		if string(col) == requested {
			return col
		}
	}
	counts := map[Color]int{}
	for _, c := range p.hand {
		counts[c.Color]++
	}
	best := wildColors[0]
	for _, col := range wildColors[1:] {
		if counts[col] > counts[best] {
			best = col
		}
	}
	return best
}

func (g *Game) deal() (Card, bool) {
	if len(g.draw) == 0 {
		g.replenish()
	}
	if len(g.draw) == 0 {
		return Card{}, false
	}
	c := g.draw[len(g.draw)-1]
	g.draw = g.draw[:len(g.draw)-1]
	return c, true
}

// replenish reshuffles the discard pile, minus the face-up card, back
// into the draw pile.
func (g *Game) replenish() {
	if len(g.discard) <= 1 {
		return
	}
	g.draw = append(g.draw, g.discard[:len(g.discard)-1]...)
	g.discard = g.discard[len(g.discard)-1:]
	g.rng.Shuffle(len(g.draw), func(i, j int) { g.draw[i], g.draw[j] = g.draw[j], g.draw[i] })
}

func (g *Game) seatAfter(steps int) int {
	n := len(g.players)
	return ((g.turn+steps*g.dir)%n + n) % n
}

func (g *Game) advance(steps int) { g.turn = g.seatAfter(steps) }

func (g *Game) penalize(seat, cards int) {
	for i := 0; i < cards; i++ {
		c, ok := g.deal()
		if !ok {
			return
		}
		g.players[seat].hand = append(g.players[seat].hand, c)
	}
}
