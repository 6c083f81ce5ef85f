package evaluator

import (
	"math"

	"holdem-trainer/internal/deck"
)

// StartingGrade is the heuristic quality of a 2-card starting hand.
type StartingGrade struct {
	Score int
	Grade string
	Tip   string
}

var gradeTips = map[string]string{
	"S": "Premium hand. Raise from any position.",
	"A": "Strong hand. Open with a raise or call one.",
	"B": "Solid hand. Playable from most positions.",
	"C": "Speculative. See a cheap flop in position.",
	"D": "Marginal. Check when free, fold to pressure.",
	"F": "Weak. Fold to any bet.",
}

// GradeStartingHand grades exactly two hole cards with a simplified
// Chen-style formula: base points from the high card, doubled for pairs
// (floor 5), +2 suited, a gap adjustment, and a suited-connector bonus
// when the high card sits below a Queen. Anything other than two cards
// grades F.
func GradeStartingHand(cards []deck.Card) StartingGrade {
	if len(cards) != 2 {
		return StartingGrade{Grade: "F", Tip: gradeTips["F"]}
	}

	hi, lo := cards[0], cards[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}

	var points float64
	switch hi.Rank {
	case deck.Ace:
		points = 10
	case deck.King:
		points = 8
	case deck.Queen:
		points = 7
	case deck.Jack:
		points = 6
	default:
		points = float64(hi.Rank) / 2
	}

	paired := hi.Rank == lo.Rank
	suited := hi.Suit == lo.Suit

	if paired {
		points *= 2
		if points < 5 {
			points = 5
		}
	}
	if suited {
		points += 2
	}

	gap := int(hi.Rank) - int(lo.Rank)
	switch {
	case paired:
		// No gap adjustment for pairs.
	case gap == 1:
		points++
	case gap == 2:
		points--
	case gap == 3:
		points -= 2
	case gap == 4:
		points -= 4
	case gap >= 5:
		points -= 5
	}

	// Suited connectors below a Queen play well multiway.
	if !paired && suited && gap <= 1 && hi.Rank < deck.Queen {
		points++
	}

	score := int(math.Ceil(points))
	grade := gradeFor(score)
	return StartingGrade{Score: score, Grade: grade, Tip: gradeTips[grade]}
}

func gradeFor(score int) string {
	switch {
	case score >= 20:
		return "S"
	case score >= 15:
		return "A"
	case score >= 10:
		return "B"
	case score >= 7:
		return "C"
	case score >= 5:
		return "D"
	default:
		return "F"
	}
}

// HandKey renders two hole cards in chart notation, e.g. "AKs", "72o",
// "TT". Used in round logs and advisor prompts.
func HandKey(cards []deck.Card) string {
	if len(cards) != 2 {
		return ""
	}
	hi, lo := cards[0], cards[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return hi.Rank.String() + lo.Rank.String()
	}
	suffix := "o"
	if hi.Suit == lo.Suit {
		suffix = "s"
	}
	return hi.Rank.String() + lo.Rank.String() + suffix
}
