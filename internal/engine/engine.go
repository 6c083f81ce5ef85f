// Package engine owns the betting-round state machine for a single
// table: blind posting, turn rotation, bet accounting, street
// advancement and showdown resolution. All operations take a GameState
// value and return a new one; the engine holds only configuration
// (blinds, RNG, logger, clock).
package engine

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"holdem-trainer/internal/deck"
	"holdem-trainer/internal/evaluator"
)

// Engine drives hands for one table configuration
type Engine struct {
	smallBlind int
	bigBlind   int
	rng        *rand.Rand
	logger     *log.Logger
	clock      quartz.Clock
}

// New creates an engine. The RNG covers deck shuffles; the clock stamps
// hand-history entries and is injectable for tests.
func New(smallBlind, bigBlind int, rng *rand.Rand, logger *log.Logger, clock quartz.Clock) *Engine {
	return &Engine{
		smallBlind: smallBlind,
		bigBlind:   bigBlind,
		rng:        rng,
		logger:     logger.WithPrefix("engine"),
		clock:      clock,
	}
}

// BigBlind returns the configured big blind
func (e *Engine) BigBlind() int { return e.bigBlind }

// SmallBlind returns the configured small blind
func (e *Engine) SmallBlind() int { return e.smallBlind }

// HandOption adjusts hand setup, mainly for deterministic tests
type HandOption func(*handSetup)

type handSetup struct {
	deck *deck.Deck
}

// WithDeck replaces the shuffled deck with an explicit one
func WithDeck(d deck.Deck) HandOption {
	return func(hs *handSetup) {
		hs.deck = &d
	}
}

// SetupHand resets the seats for a new hand, shuffles a fresh deck,
// advances the button, posts blinds (heads-up: the dealer posts the
// small blind) and deals two cards to every funded seat. The returned
// state is at PreFlop with the action on the seat after the big blind,
// unless the blinds already put everyone all-in, in which case the
// remaining streets run out immediately.
func (e *Engine) SetupHand(players []Player, dealerIndex, handCount int, history []HandHistoryEntry, opts ...HandOption) GameState {
	var hs handSetup
	for _, opt := range opts {
		opt(&hs)
	}
	handDeck := deck.New().Shuffled(e.rng)
	if hs.deck != nil {
		handDeck = *hs.deck
	}

	n := len(players)
	s := GameState{
		Phase:     PreFlop,
		Deck:      handDeck,
		Players:   make([]Player, n),
		Dealer:    (dealerIndex + 1) % n,
		MinBet:    e.bigBlind,
		HandCount: handCount,
		History:   append([]HandHistoryEntry(nil), history...),
	}
	copy(s.Players, players)
	for i := range s.Players {
		p := &s.Players[i]
		p.HoleCards = nil
		p.CurrentBet = 0
		p.Active = p.Chips > 0
		p.AllIn = false
		p.LastAction = ""
	}

	s.RoundLog = append(s.RoundLog, fmt.Sprintf("--- Hand #%d ---", handCount))

	sbSeat, bbSeat := e.blindSeats(&s)
	e.postBlind(&s, sbSeat, e.smallBlind, "small blind")
	e.postBlind(&s, bbSeat, e.bigBlind, "big blind")
	s.CurrentBet = e.bigBlind
	s.LastRaiser = bbSeat

	// Two passes, drawing from the tail each time.
	for round := 0; round < 2; round++ {
		for i := range s.Players {
			if !s.Players[i].Active {
				continue
			}
			card, ok := s.Deck.Draw()
			if !ok {
				e.logger.Error("deck exhausted while dealing hole cards", "seat", i)
				continue
			}
			s.Players[i].HoleCards = append(s.Players[i].HoleCards, card)
		}
	}

	s.CurrentPlayer = s.nextEligible(bbSeat + 1)
	e.logger.Debug("hand set up",
		"hand", handCount,
		"dealer", s.Dealer,
		"smallBlind", sbSeat,
		"bigBlind", bbSeat,
		"firstToAct", s.CurrentPlayer)

	if s.CurrentPlayer == -1 {
		// Blinds put every remaining seat all-in: run the board out.
		return e.advanceStreet(s)
	}
	return s
}

// blindSeats picks the small- and big-blind seats. With exactly two
// funded seats the dealer posts the small blind and the other seat the
// big blind; otherwise the blinds sit left of the button.
func (e *Engine) blindSeats(s *GameState) (sb, bb int) {
	n := len(s.Players)
	funded := make([]int, 0, n)
	for i := 0; i < n; i++ {
		seat := (s.Dealer + i) % n
		if s.Players[seat].Chips > 0 {
			funded = append(funded, seat)
		}
	}
	if len(funded) == 2 {
		return funded[0], funded[1]
	}
	return (s.Dealer + 1) % n, (s.Dealer + 2) % n
}

// postBlind commits a forced bet capped at the seat's stack
func (e *Engine) postBlind(s *GameState, seat, amount int, label string) {
	p := &s.Players[seat]
	posted := min(amount, p.Chips)
	p.Chips -= posted
	p.CurrentBet += posted
	if p.Chips == 0 {
		p.AllIn = true
	}
	s.Pot += posted
	p.LastAction = label
	s.RoundLog = append(s.RoundLog, fmt.Sprintf("%s posts %s %d", p.Name, label, posted))
}

// ApplyAction commits amount chips from the seat, capped at its stack.
// A commitment that pushes the seat's round bet above the table bet is
// a raise: it resets the bet-to-match, widens the minimum raise and
// makes this seat the aggressor. The turn pointer does not move; call
// AdvanceTurn afterwards.
func (e *Engine) ApplyAction(state GameState, seat, amount int, label string) GameState {
	s := state.Clone()
	if seat < 0 || seat >= len(s.Players) {
		e.logger.Error("action for invalid seat", "seat", seat)
		return s
	}
	p := &s.Players[seat]

	actual := min(amount, p.Chips)
	p.Chips -= actual
	p.CurrentBet += actual
	s.Pot += actual
	if p.Chips == 0 {
		p.AllIn = true
	}

	if p.CurrentBet > s.CurrentBet {
		raiseDelta := p.CurrentBet - s.CurrentBet
		s.CurrentBet = p.CurrentBet
		s.MinBet = max(s.MinBet, raiseDelta)
		s.LastRaiser = seat
	}

	p.LastAction = label
	if actual > 0 {
		s.RoundLog = append(s.RoundLog, fmt.Sprintf("%s: %s (%d)", p.Name, label, actual))
	} else {
		s.RoundLog = append(s.RoundLog, fmt.Sprintf("%s: %s", p.Name, label))
	}
	e.logger.Debug("action applied",
		"seat", seat, "player", p.Name, "label", label,
		"amount", actual, "pot", s.Pot, "currentBet", s.CurrentBet, "allIn", p.AllIn)
	return s
}

// Fold retires the seat for the rest of the hand. When only one active
// seat remains the hand settles immediately as a fold-out.
func (e *Engine) Fold(state GameState, seat int) GameState {
	s := state.Clone()
	if seat < 0 || seat >= len(s.Players) {
		e.logger.Error("fold for invalid seat", "seat", seat)
		return s
	}
	p := &s.Players[seat]
	p.Active = false
	p.LastAction = "Fold"
	s.RoundLog = append(s.RoundLog, fmt.Sprintf("%s folds", p.Name))
	e.logger.Debug("fold", "seat", seat, "player", p.Name)

	if s.ActiveCount() == 1 {
		return e.showdown(s)
	}
	return s
}

// AdvanceTurn moves the action to the next seat that can act, scanning
// forward one bounded lap from the current seat. The round closes, and
// the street advances, when no such seat exists or when the action
// returns to the aggressor with its bet already matched. An all-in
// aggressor never reappears in the scan, so the round also closes once
// the found seat has matched the bet and the aggressor cannot act.
func (e *Engine) AdvanceTurn(state GameState) GameState {
	s := state.Clone()
	next := s.nextEligible(s.CurrentPlayer + 1)
	if next == -1 {
		return e.advanceStreet(s)
	}
	if next == s.LastRaiser && s.Players[next].CurrentBet == s.CurrentBet {
		return e.advanceStreet(s)
	}
	aggressorCanAct := s.LastRaiser >= 0 && s.LastRaiser < len(s.Players) &&
		s.Players[s.LastRaiser].CanAct()
	if !aggressorCanAct && s.Players[next].CurrentBet == s.CurrentBet {
		return e.advanceStreet(s)
	}
	s.CurrentPlayer = next
	return s
}

// advanceStreet closes the betting round: per-seat bets reset, the next
// street is dealt (burn one, then 3/1/1) and the action restarts left
// of the dealer. When nobody can act the remaining streets run out
// automatically. From the river it resolves the showdown instead.
func (e *Engine) advanceStreet(s GameState) GameState {
	if s.Phase == River {
		return e.showdown(s)
	}
	if s.Phase >= Showdown {
		return s
	}

	for i := range s.Players {
		s.Players[i].CurrentBet = 0
	}
	s.CurrentBet = 0
	s.MinBet = e.bigBlind

	s.Deck.Burn()
	dealN := 1
	if s.Phase == PreFlop {
		dealN = 3
	}
	for i := 0; i < dealN; i++ {
		card, ok := s.Deck.Draw()
		if !ok {
			e.logger.Error("deck exhausted while dealing community cards", "phase", s.Phase.String())
			break
		}
		s.Community = append(s.Community, card)
	}
	s.Phase++

	board := make([]string, 0, len(s.Community))
	for _, c := range s.Community {
		board = append(board, c.String())
	}
	s.RoundLog = append(s.RoundLog, fmt.Sprintf("*** %s *** [%s]", strings.ToUpper(s.Phase.String()), strings.Join(board, " ")))

	first := s.nextEligible(s.Dealer + 1)
	s.CurrentPlayer = first
	s.LastRaiser = first
	e.logger.Debug("street advanced", "phase", s.Phase.String(), "firstToAct", first)

	if first == -1 {
		// Everyone left is folded or all-in; no betting is possible.
		s.RoundLog = append(s.RoundLog, "(all-in) dealing remaining streets")
		return e.advanceStreet(s)
	}
	return s
}

// showdown settles the hand: the surviving seats' hands are scored
// against the board, the pot is floor-split among the best, and the
// remainder chip goes to the first winner left of the dealer. A single
// surviving seat wins without evaluation.
func (e *Engine) showdown(s GameState) GameState {
	prePot := s.Pot
	s.DisplayPot = prePot

	var winners []int
	var handLabel string

	actives := make([]int, 0, len(s.Players))
	for i := range s.Players {
		if s.Players[i].Active {
			actives = append(actives, i)
		}
	}

	if len(actives) == 1 {
		winners = actives
		handLabel = "all opponents folded"
	} else {
		bestScore := -1
		for _, seat := range actives {
			result := evaluator.Evaluate(s.Players[seat].HoleCards, s.Community)
			e.logger.Debug("showdown evaluation",
				"player", s.Players[seat].Name,
				"score", result.Score,
				"category", result.Category.String())
			switch {
			case result.Score > bestScore:
				bestScore = result.Score
				winners = []int{seat}
				handLabel = result.Category.String()
			case result.Score == bestScore:
				winners = append(winners, seat)
			}
		}
	}

	share := 0
	remainder := 0
	if len(winners) > 0 {
		share = prePot / len(winners)
		remainder = prePot % len(winners)
	}
	for _, seat := range winners {
		s.Players[seat].Chips += share
	}
	if remainder > 0 {
		seat := firstWinnerFromDealer(s, winners)
		s.Players[seat].Chips += remainder
		s.RoundLog = append(s.RoundLog, fmt.Sprintf("odd chip to %s", s.Players[seat].Name))
	}

	names := make([]string, 0, len(winners))
	for _, seat := range winners {
		names = append(names, s.Players[seat].Name)
	}

	s.Pot = 0
	s.Phase = Showdown
	s.CurrentPlayer = -1
	s.RoundLog = append(s.RoundLog, fmt.Sprintf("%s win(s) %d with %s", strings.Join(names, ", "), prePot, handLabel))
	s.History = append(s.History, HandHistoryEntry{
		HandNumber: s.HandCount,
		Winners:    names,
		Pot:        prePot,
		HandLabel:  handLabel,
		Timestamp:  e.clock.Now(),
	})
	e.logger.Info("hand settled", "hand", s.HandCount, "winners", strings.Join(names, ","), "pot", prePot, "label", handLabel)
	return s
}

// firstWinnerFromDealer returns the winning seat encountered first when
// scanning from the dealer's left
func firstWinnerFromDealer(s GameState, winners []int) int {
	n := len(s.Players)
	for i := 1; i <= n; i++ {
		seat := (s.Dealer + i) % n
		for _, w := range winners {
			if w == seat {
				return seat
			}
		}
	}
	return winners[0]
}
