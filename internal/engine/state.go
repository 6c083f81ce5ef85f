package engine

import (
	"time"

	"holdem-trainer/internal/deck"
)

// Phase is the current stage of a hand. GameOver, Menu and Shop belong
// to the surrounding shell; the engine only ever produces PreFlop
// through Showdown.
type Phase int

const (
	PreFlop Phase = iota
	Flop
	Turn
	River
	Showdown
	GameOver
	Menu
	Shop
)

func (p Phase) String() string {
	switch p {
	case PreFlop:
		return "pre-flop"
	case Flop:
		return "flop"
	case Turn:
		return "turn"
	case River:
		return "river"
	case Showdown:
		return "showdown"
	case GameOver:
		return "game-over"
	case Menu:
		return "menu"
	case Shop:
		return "shop"
	default:
		return "unknown"
	}
}

// Player is one seat at the table. Seat identity is the Name plus its
// index in GameState.Players, stable across hands regardless of chip
// swings.
type Player struct {
	Name       string
	Chips      int
	HoleCards  []deck.Card
	CurrentBet int  // chips committed in the current betting round
	Active     bool // has not folded this hand
	AllIn      bool
	LastAction string // transient display label
}

// CanAct reports whether the seat may still take actions this round
func (p *Player) CanAct() bool {
	return p.Active && !p.AllIn
}

// HandHistoryEntry summarises one settled hand
type HandHistoryEntry struct {
	HandNumber int
	Winners    []string
	Pot        int
	HandLabel  string
	Timestamp  time.Time
}

// GameState is the full state of one hand. Engine operations never
// mutate a state in place; they clone it and return the successor, so a
// caller can hold before/after snapshots safely.
type GameState struct {
	Phase         Phase
	Pot           int
	DisplayPot    int // pre-payout pot recorded at showdown
	Community     []deck.Card
	Deck          deck.Deck
	Players       []Player
	CurrentPlayer int
	Dealer        int
	MinBet        int // minimum legal raise increment this round
	CurrentBet    int // table bet-to-match
	LastRaiser    int // seat whose bet set CurrentBet; closes the round
	RoundLog      []string
	HandCount     int
	History       []HandHistoryEntry
}

// Clone returns a state backed entirely by its own storage
func (s GameState) Clone() GameState {
	c := s
	c.Players = make([]Player, len(s.Players))
	copy(c.Players, s.Players)
	for i := range c.Players {
		if s.Players[i].HoleCards != nil {
			c.Players[i].HoleCards = append([]deck.Card(nil), s.Players[i].HoleCards...)
		}
	}
	c.Community = append([]deck.Card(nil), s.Community...)
	c.Deck = s.Deck.Clone()
	c.RoundLog = append([]string(nil), s.RoundLog...)
	c.History = append([]HandHistoryEntry(nil), s.History...)
	return c
}

// ToCall returns the chips the seat must commit to match the table bet
func (s GameState) ToCall(seat int) int {
	if seat < 0 || seat >= len(s.Players) {
		return 0
	}
	toCall := s.CurrentBet - s.Players[seat].CurrentBet
	if toCall < 0 {
		return 0
	}
	return toCall
}

// ActiveCount returns the number of seats that have not folded
func (s GameState) ActiveCount() int {
	n := 0
	for i := range s.Players {
		if s.Players[i].Active {
			n++
		}
	}
	return n
}

// TotalChips returns seat chips plus the pot; constant within a hand
// except across the showdown payout.
func (s GameState) TotalChips() int {
	total := s.Pot
	for i := range s.Players {
		total += s.Players[i].Chips
	}
	return total
}

// nextEligible scans forward from the given seat (inclusive, wrapping)
// for a seat that can act, bounded by one full lap. Returns -1 when no
// such seat exists.
func (s GameState) nextEligible(from int) int {
	n := len(s.Players)
	if n == 0 {
		return -1
	}
	for i := 0; i < n; i++ {
		seat := ((from+i)%n + n) % n
		if s.Players[seat].CanAct() {
			return seat
		}
	}
	return -1
}
