package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-trainer/internal/deck"
)

func TestGradeStartingHand(t *testing.T) {
	tests := []struct {
		hand  string
		grade string
	}{
		{"AsAh", "S"}, // pocket aces are the premium benchmark
		{"KsKh", "A"},
		{"QsQh", "B"},
		{"TsTh", "B"},
		{"2s2h", "D"}, // small pairs hit the doubling floor
		{"AsKs", "B"},
		{"AsKh", "B"},
		{"7s6s", "C"}, // suited connector bonus applies below a queen
		{"As2h", "D"},
		{"7c2h", "F"}, // offsuit, disconnected, low
		{"9c3d", "F"},
	}
	for _, tt := range tests {
		t.Run(tt.hand, func(t *testing.T) {
			got := GradeStartingHand(deck.MustParseCards(tt.hand))
			assert.Equal(t, tt.grade, got.Grade, "score was %d", got.Score)
			assert.NotEmpty(t, got.Tip)
		})
	}
}

func TestGradeStartingHandScores(t *testing.T) {
	aces := GradeStartingHand(deck.MustParseCards("AsAh"))
	assert.Equal(t, 20, aces.Score)

	sevenDeuce := GradeStartingHand(deck.MustParseCards("7c2h"))
	assert.Equal(t, -1, sevenDeuce.Score, "7-2 offsuit rounds up from -1.5")

	suited := GradeStartingHand(deck.MustParseCards("AsKs"))
	offsuit := GradeStartingHand(deck.MustParseCards("AsKh"))
	assert.Equal(t, suited.Score, offsuit.Score+2, "suitedness is worth two points")
}

func TestGradeStartingHandIsOrderIndependent(t *testing.T) {
	a := GradeStartingHand(deck.MustParseCards("As7h"))
	b := GradeStartingHand(deck.MustParseCards("7hAs"))
	assert.Equal(t, a, b)
}

func TestGradeStartingHandWrongCount(t *testing.T) {
	got := GradeStartingHand(deck.MustParseCards("AsKsQs"))
	assert.Equal(t, "F", got.Grade)
}

func TestHandKey(t *testing.T) {
	tests := []struct {
		hand string
		want string
	}{
		{"AsKs", "AKs"},
		{"KhAd", "AKo"},
		{"7c2h", "72o"},
		{"ThTd", "TT"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HandKey(deck.MustParseCards(tt.hand)))
	}
}
