package deck

import (
	rand "math/rand/v2"
)

// Deck is an ordered sequence of cards. A fresh deck holds all 52 unique
// (rank, suit) combinations; cards are drawn from the tail and the
// sequence only shrinks during a hand.
type Deck struct {
	cards []Card
}

// New creates a full 52-card deck in canonical order
func New() Deck {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return Deck{cards: cards}
}

// Shuffled returns a uniformly random permutation of the deck using
// Fisher-Yates. The receiver is not mutated.
func (d Deck) Shuffled(rng *rand.Rand) Deck {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return Deck{cards: cards}
}

// Draw removes and returns the last card. The second return value is
// false when the deck is empty; a well-formed 2-9 seat hand never
// exhausts the deck, so callers treat false as a defensive guard.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Burn discards the last card before a street is dealt
func (d *Deck) Burn() bool {
	_, ok := d.Draw()
	return ok
}

// Len returns the number of cards remaining
func (d Deck) Len() int {
	return len(d.cards)
}

// Clone returns a deck backed by its own card storage
func (d Deck) Clone() Deck {
	cards := make([]Card, len(d.cards))
	copy(cards, d.cards)
	return Deck{cards: cards}
}

// Stacked builds a deck from explicit cards for deterministic tests.
// Cards are drawn from the tail, so the last card listed is dealt first.
func Stacked(cards ...Card) Deck {
	c := make([]Card, len(cards))
	copy(c, cards)
	return Deck{cards: c}
}
