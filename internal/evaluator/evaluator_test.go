package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-trainer/internal/deck"
	"holdem-trainer/internal/randutil"
)

func eval(t *testing.T, hole, community string) Result {
	t.Helper()
	return Evaluate(deck.MustParseCards(hole), deck.MustParseCards(community))
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name      string
		hole      string
		community string
		want      Category
	}{
		{"four of a kind", "AsAh", "AdAcKs2h3c", FourOfAKind},
		{"full house", "AsAh", "AdKsKh2c3d", FullHouse},
		{"flush", "AsKs", "Qs9s2s7h3d", Flush},
		{"straight", "9s8h", "7d6c5s2h3c", Straight},
		{"wheel straight", "AsKh", "2d3c4s5h9d", Straight},
		{"three of a kind", "AsAh", "Ad9s5h2c3d", ThreeOfAKind},
		{"two pair", "AsAh", "KdKs5h2c3d", TwoPair},
		{"pair", "AsAh", "Qd9s5h2c3d", Pair},
		{"high card", "AsKh", "Qd9s5h2c3d", HighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, tt.hole, tt.community)
			assert.Equal(t, tt.want, got.Category)
		})
	}
}

// Class ordering must hold regardless of kickers: any hand of a higher
// class outscores any hand of a lower one.
func TestClassOrderingIsMonotonic(t *testing.T) {
	ladder := []Result{
		eval(t, "AsKh", "Qd9s5h2c3d"), // high card, best kickers
		eval(t, "2s2h", "Qd9s5h7c3d"), // lowest pair
		eval(t, "2s2h", "3d3s5h7c9d"), // lowest two pair
		eval(t, "2s2h", "2d9s5h7c3c"), // lowest trips
		eval(t, "As2h", "3d4s5h9cKd"), // wheel, lowest straight
		eval(t, "2s3s", "4s5s7s9hKd"), // lowest flush
		eval(t, "2s2h", "2d3s3h9cKd"), // lowest full house
		eval(t, "2s2h", "2d2c5h7c9d"), // lowest quads
	}
	for i := 1; i < len(ladder); i++ {
		assert.Greater(t, ladder[i].Score, ladder[i-1].Score,
			"%s must outrank %s", ladder[i].Category, ladder[i-1].Category)
	}
}

func TestEvaluateIsOrderIndependent(t *testing.T) {
	hole := deck.MustParseCards("AsAh")
	community := deck.MustParseCards("AdKsKh2c3d")
	want := Evaluate(hole, community)

	rng := randutil.New(7)
	all := append(append([]deck.Card{}, hole...), community...)
	for i := 0; i < 50; i++ {
		rng.Shuffle(len(all), func(a, b int) { all[a], all[b] = all[b], all[a] })
		got := Evaluate(all[:2], all[2:])
		require.Equal(t, want.Score, got.Score)
		require.Equal(t, want.Category, got.Category)
	}
}

func TestKickersBreakTies(t *testing.T) {
	aceKicker := eval(t, "QsQh", "Ad9s5h2c3d")
	nineKicker := eval(t, "QsQd", "9d8s5h2c3c")
	assert.Equal(t, Pair, aceKicker.Category)
	assert.Equal(t, Pair, nineKicker.Category)
	assert.Greater(t, aceKicker.Score, nineKicker.Score)
}

func TestEqualHandsTie(t *testing.T) {
	board := "AdKd5c8h2s"
	a := eval(t, "AsKs", board)
	b := eval(t, "AhKh", board)
	assert.Equal(t, a.Score, b.Score, "identical two-pair hands must tie exactly")
	assert.Equal(t, TwoPair, a.Category)
}

func TestPairOfAcesBeatsPairOfTwos(t *testing.T) {
	// The trainer walkthrough: board Q♦ J♦ 9♣ 4♣ 2♦.
	board := "QdJd9c4c2d"
	aces := eval(t, "AsAh", board)
	twos := eval(t, "7c2h", board)
	require.Equal(t, Pair, aces.Category)
	require.Equal(t, Pair, twos.Category)
	assert.Greater(t, aces.Score, twos.Score)
}

func TestStraightFlushScoresAsFlush(t *testing.T) {
	// Known simplification: a straight flush is reported as a Flush.
	got := eval(t, "9s8s", "7s6s5s2h3d")
	assert.Equal(t, Flush, got.Category)
}

func TestFewerThanFiveCardsIsHighCardOnly(t *testing.T) {
	got := Evaluate(deck.MustParseCards("AsAh"), nil)
	assert.Equal(t, HighCard, got.Category)
	assert.Less(t, got.Score, 1000)
}

func TestScoreBands(t *testing.T) {
	tests := []struct {
		name      string
		hole      string
		community string
		lo, hi    int
	}{
		{"quads band", "AsAh", "AdAcKs2h3c", 7000, 8000},
		{"full house band", "AsAh", "AdKsKh2c3d", 6000, 7000},
		{"flush band", "AsKs", "Qs9s2s7h3d", 5000, 6000},
		{"straight band", "9s8h", "7d6c5s2h3c", 4000, 5000},
		{"trips band", "AsAh", "Ad9s5h2c3d", 3000, 4000},
		{"two pair band", "AsAh", "KdKs5h2c3d", 2000, 3000},
		{"pair band", "AsAh", "Qd9s5h2c3d", 1000, 2000},
		{"high card band", "AsKh", "Qd9s5h2c3d", 0, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := eval(t, tt.hole, tt.community)
			assert.GreaterOrEqual(t, got.Score, tt.lo)
			assert.Less(t, got.Score, tt.hi)
		})
	}
}
