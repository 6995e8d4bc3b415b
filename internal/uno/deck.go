package uno

import (
	"math/rand"
	"strconv"
)

// newDeck builds a shuffled standard deck: per color one 0, two each of
// 1-9, skip, reverse and +2; plus four wildcards and four +4s. 108 total.
func newDeck(rng *rand.Rand) []Card {
	deck := make([]Card, 0, 108)
	for _, col := range wildColors {
		deck = append(deck, Card{Color: col, Value: "0"})
		for v := 1; v <= 9; v++ {
			c := Card{Color: col, Value: Value(strconv.Itoa(v))}
			deck = append(deck, c, c)
		}
		for _, v := range []Value{Skip, Reverse, DrawTwo} {
			c := Card{Color: col, Value: v}
			deck = append(deck, c, c)
		}
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{Color: Black, Value: Wild}, Card{Color: Black, Value: WildFour})
	}
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}
