// Package evaluator scores poker hands. Evaluate ranks any 2-7 card
// combination of hole and community cards into a single comparable
// integer; GradeStartingHand grades a 2-card starting hand.
package evaluator

import (
	"sort"

	"holdem-trainer/internal/deck"
)

// Category is the hand class of an evaluation. Straight flushes are not
// distinguished from plain flushes; a hand that is both scores as a
// Flush (known simplification).
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
)

// String returns a human-readable hand description
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	default:
		return "Unknown"
	}
}

// Base returns the fixed score offset for the category. Tie-break terms
// within a class stay below 1000, so scores from different classes never
// overlap and numeric comparison is a total order over hand strength.
func (c Category) Base() int {
	return int(c) * 1000
}

// Result is a scored hand. Equal scores are a true tie.
type Result struct {
	Score    int
	Category Category
}

// tally holds the count tables a classifier needs
type tally struct {
	cards     []deck.Card
	ranks     []int // all rank values, descending
	distinct  []int // distinct rank values, descending
	rankCount [15]int
	suitCount [4]int
}

// classifier inspects the tally and either claims the hand with a score
// or passes. Classifiers run in strictly descending class priority and
// the first match wins.
type classifier struct {
	category Category
	match    func(t *tally) (int, bool)
}

var classifiers = []classifier{
	{FourOfAKind, matchFourOfAKind},
	{FullHouse, matchFullHouse},
	{Flush, matchFlush},
	{Straight, matchStraight},
	{ThreeOfAKind, matchThreeOfAKind},
	{TwoPair, matchTwoPair},
	{Pair, matchPair},
	{HighCard, matchHighCard},
}

// Evaluate scores the best hand formed by the hole and community cards.
// Input order never affects the result. With fewer than five total cards
// (pre-flop display) only the high-card classifier applies.
func Evaluate(holeCards, communityCards []deck.Card) Result {
	cards := make([]deck.Card, 0, len(holeCards)+len(communityCards))
	cards = append(cards, holeCards...)
	cards = append(cards, communityCards...)
	if len(cards) == 0 {
		return Result{}
	}

	t := newTally(cards)

	if len(cards) < 5 {
		score, _ := matchHighCard(t)
		return Result{Score: score, Category: HighCard}
	}

	for _, c := range classifiers {
		if score, ok := c.match(t); ok {
			return Result{Score: score, Category: c.category}
		}
	}
	return Result{} // unreachable: high card always matches
}

func newTally(cards []deck.Card) *tally {
	t := &tally{cards: cards, ranks: make([]int, 0, len(cards))}
	for _, c := range cards {
		t.ranks = append(t.ranks, int(c.Rank))
		t.rankCount[int(c.Rank)]++
		t.suitCount[c.Suit]++
	}
	sort.Sort(sort.Reverse(sort.IntSlice(t.ranks)))
	for r := 14; r >= 2; r-- {
		if t.rankCount[r] > 0 {
			t.distinct = append(t.distinct, r)
		}
	}
	return t
}

// encode packs tie-break terms under a category base. primary dominates,
// secondary breaks remaining ties; both are rank values (2-14).
func encode(c Category, primary, secondary int) int {
	return c.Base() + primary*15 + secondary
}

// highestExcept returns the highest rank present that is not in the
// excluded set, or 0 when none remains.
func (t *tally) highestExcept(except ...int) int {
	for _, r := range t.distinct {
		skip := false
		for _, e := range except {
			if r == e {
				skip = true
				break
			}
		}
		if !skip {
			return r
		}
	}
	return 0
}

// highestWithCount returns the highest rank held at least n times,
// excluding the given ranks, or 0 when none qualifies.
func (t *tally) highestWithCount(n int, except ...int) int {
	for _, r := range t.distinct {
		if t.rankCount[r] < n {
			continue
		}
		skip := false
		for _, e := range except {
			if r == e {
				skip = true
				break
			}
		}
		if !skip {
			return r
		}
	}
	return 0
}

func matchFourOfAKind(t *tally) (int, bool) {
	quad := t.highestWithCount(4)
	if quad == 0 {
		return 0, false
	}
	return encode(FourOfAKind, quad, t.highestExcept(quad)), true
}

func matchFullHouse(t *tally) (int, bool) {
	trips := t.highestWithCount(3)
	if trips == 0 {
		return 0, false
	}
	pair := t.highestWithCount(2, trips)
	if pair == 0 {
		return 0, false
	}
	return encode(FullHouse, trips, pair), true
}

func matchFlush(t *tally) (int, bool) {
	suit := -1
	for s, n := range t.suitCount {
		if n >= 5 {
			suit = s
		}
	}
	if suit < 0 {
		return 0, false
	}
	// Top two flush ranks break ties between flushes.
	first, second := 0, 0
	for r := 14; r >= 2; r-- {
		if !t.hasCard(r, deck.Suit(suit)) {
			continue
		}
		if first == 0 {
			first = r
		} else if second == 0 {
			second = r
			break
		}
	}
	return encode(Flush, first, second), true
}

// hasCard reports whether the tallied cards include the given rank in
// the given suit
func (t *tally) hasCard(rank int, suit deck.Suit) bool {
	for _, c := range t.cards {
		if int(c.Rank) == rank && c.Suit == suit {
			return true
		}
	}
	return false
}

func matchStraight(t *tally) (int, bool) {
	d := t.distinct
	for i := 0; i+4 < len(d); i++ {
		if d[i]-d[i+4] == 4 {
			return encode(Straight, d[i], 0), true
		}
	}
	// Wheel: Ace counts low for A-2-3-4-5, scored as a 5-high straight.
	if t.rankCount[14] > 0 && t.rankCount[5] > 0 && t.rankCount[4] > 0 &&
		t.rankCount[3] > 0 && t.rankCount[2] > 0 {
		return encode(Straight, 5, 0), true
	}
	return 0, false
}

func matchThreeOfAKind(t *tally) (int, bool) {
	trips := t.highestWithCount(3)
	if trips == 0 {
		return 0, false
	}
	return encode(ThreeOfAKind, trips, t.highestExcept(trips)), true
}

func matchTwoPair(t *tally) (int, bool) {
	high := t.highestWithCount(2)
	if high == 0 {
		return 0, false
	}
	low := t.highestWithCount(2, high)
	if low == 0 {
		return 0, false
	}
	return encode(TwoPair, high, low), true
}

func matchPair(t *tally) (int, bool) {
	pair := t.highestWithCount(2)
	if pair == 0 {
		return 0, false
	}
	return encode(Pair, pair, t.highestExcept(pair)), true
}

func matchHighCard(t *tally) (int, bool) {
	first := t.distinct[0]
	second := 0
	if len(t.distinct) > 1 {
		second = t.distinct[1]
	}
	return encode(HighCard, first, second), true
}
