// Package bot implements the opponent decision policy. A Policy is a
// pure function of the game state, a seat and an injected RNG: it never
// mutates state, so the driver applies its decisions through the engine.
package bot

import (
	"math"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"holdem-trainer/internal/engine"
	"holdem-trainer/internal/evaluator"
	"holdem-trainer/internal/randutil"
)

// Action is the policy's chosen move
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// Decision is the policy output. Amount is the chips to commit with
// this action (call amount included for raises); it is zero for fold
// and check.
type Decision struct {
	Action Action
	Amount int
}

// Personality tunes how a seat plays. VPIP is looseness (willingness to
// voluntarily enter a pot), Aggression the raise tendency, Bluff the
// willingness to represent a stronger hand than held. All in [0, 1].
type Personality struct {
	Name       string
	VPIP       float64
	Aggression float64
	Bluff      float64
}

// Neutral is the profile used for seats without a configured personality
var Neutral = Personality{Name: "neutral", VPIP: 0.5, Aggression: 0.5, Bluff: 0.1}

// Decision thresholds. Strength is normalized to [0, 1].
const (
	weakThreshold  = 0.30 // below this, fold to a bet (unless bluffing)
	raiseThreshold = 0.55 // above this, a raise is worth considering
	preflopClamp   = 25   // starting-hand scores cap here before normalizing
)

// Policy decides actions for bot-controlled seats
type Policy struct {
	profiles map[string]Personality
	rng      *rand.Rand
	logger   *log.Logger
}

// New builds a policy from the configured personalities, keyed by seat
// name. Seats without a profile play the Neutral one.
func New(profiles []Personality, rng *rand.Rand, logger *log.Logger) *Policy {
	m := make(map[string]Personality, len(profiles))
	for _, p := range profiles {
		m[p.Name] = p
	}
	return &Policy{profiles: m, rng: rng, logger: logger.WithPrefix("bot")}
}

// Profile returns the personality for a seat name
func (p *Policy) Profile(name string) Personality {
	if prof, ok := p.profiles[name]; ok {
		return prof
	}
	return Neutral
}

// Decide produces a FOLD/CHECK/CALL/RAISE decision for the seat from
// the current state, the evaluator's scores and the seat's personality.
func (p *Policy) Decide(state engine.GameState, seat int) Decision {
	player := state.Players[seat]
	prof := p.Profile(player.Name)
	toCall := state.ToCall(seat)

	strength := p.strength(state, seat)
	bluffing := randutil.Chance(p.rng, prof.Bluff)
	if bluffing {
		// Represent a stronger hand than held.
		strength += (1 - strength) * 0.5
	}

	p.logger.Debug("deciding",
		"player", player.Name,
		"hand", evaluator.HandKey(player.HoleCards),
		"phase", state.Phase.String(),
		"strength", strength,
		"toCall", toCall,
		"bluffing", bluffing)

	if toCall > 0 && strength < weakThreshold {
		if state.Phase == engine.PreFlop && !randutil.Chance(p.rng, prof.VPIP) {
			return Decision{Action: Fold}
		}
		if !bluffing {
			return Decision{Action: Fold}
		}
	}

	canRaise := player.Chips > toCall
	if canRaise && strength > raiseThreshold && randutil.Chance(p.rng, prof.Aggression) {
		return Decision{Action: Raise, Amount: p.raiseAmount(state, seat, toCall)}
	}

	if toCall == 0 {
		return Decision{Action: Check}
	}
	return Decision{Action: Call, Amount: min(toCall, player.Chips)}
}

// strength normalizes the hand to [0, 1]: pre-flop from the starting
// grade score, post-flop through fixed bands per hand category.
func (p *Policy) strength(state engine.GameState, seat int) float64 {
	hole := state.Players[seat].HoleCards

	if state.Phase == engine.PreFlop {
		grade := evaluator.GradeStartingHand(hole)
		score := grade.Score
		if score < 0 {
			score = 0
		}
		if score > preflopClamp {
			score = preflopClamp
		}
		return float64(score) / preflopClamp
	}

	result := evaluator.Evaluate(hole, state.Community)
	// Fraction through the category's tie-break band, for sloped bands.
	frac := float64(result.Score-result.Category.Base()) / 999.0

	switch result.Category {
	case evaluator.HighCard:
		return 0.1 + 0.1*frac
	case evaluator.Pair:
		return 0.4 + 0.2*frac
	case evaluator.TwoPair:
		return 0.7
	case evaluator.ThreeOfAKind:
		return 0.8
	default: // straight or better
		return 0.95
	}
}

// raiseAmount sizes a raise between half and one and a half times the
// pot, never below the table minimum raise, capped at the stack. The
// returned amount includes the call.
func (p *Policy) raiseAmount(state engine.GameState, seat, toCall int) int {
	player := state.Players[seat]

	frac := 0.5 + p.rng.Float64() // 0.5x to 1.5x pot
	raiseBy := int(math.Floor(float64(state.Pot) * frac))
	if raiseBy < state.MinBet {
		raiseBy = state.MinBet
	}

	amount := toCall + raiseBy
	if amount > player.Chips {
		amount = player.Chips
	}
	return amount
}
