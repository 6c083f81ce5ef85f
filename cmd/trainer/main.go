package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"holdem-trainer/internal/advisor"
	"holdem-trainer/internal/bot"
	"holdem-trainer/internal/config"
	"holdem-trainer/internal/engine"
	"holdem-trainer/internal/randutil"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#005F30")).
			Padding(0, 1).
			Bold(true)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)
)

type CLI struct {
	Config string `short:"c" help:"Path to HCL config file" default:"trainer.hcl"`
	Hands  int    `help:"Number of hands to play (overrides config)" default:"0"`
	Seed   int64  `help:"RNG seed for reproducible sessions (0 = time-based)" default:"0"`
	Coach  bool   `help:"Print LLM coaching and banter for the hero seat"`
	Debug  bool   `help:"Enable debug logging"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	level := log.InfoLevel
	if cli.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	fmt.Println(titleStyle.Render(" ♠ ♥ Hold'em Trainer ♦ ♣ "))
	fmt.Println()

	if err := run(cli, logger); err != nil {
		log.Fatal("Trainer failed", "error", err)
	}
	kctx.Exit(0)
}

func run(cli CLI, logger *log.Logger) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	hands := cfg.Table.Hands
	if cli.Hands > 0 {
		hands = cli.Hands
	}
	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("Session starting",
		"seats", cfg.Table.Seats,
		"blinds", fmt.Sprintf("%d/%d", cfg.Table.SmallBlind, cfg.Table.BigBlind),
		"hands", hands,
		"seed", seed)

	rng := randutil.New(seed)
	eng := engine.New(cfg.Table.SmallBlind, cfg.Table.BigBlind, rng, logger, quartz.NewReal())

	players := make([]engine.Player, 0, cfg.Table.Seats)
	players = append(players, engine.Player{Name: "Hero", Chips: cfg.Table.StartingChips})
	profiles := make([]bot.Personality, 0, len(cfg.Opponents))
	for _, o := range cfg.Opponents {
		if len(players) == cfg.Table.Seats {
			break
		}
		players = append(players, engine.Player{Name: o.Name, Chips: cfg.Table.StartingChips})
		profiles = append(profiles, bot.Personality{
			Name:       o.Name,
			VPIP:       *o.VPIP,
			Aggression: *o.Aggression,
			Bluff:      *o.Bluff,
		})
	}
	for len(players) < cfg.Table.Seats {
		players = append(players, engine.Player{
			Name:  fmt.Sprintf("Bot-%d", len(players)),
			Chips: cfg.Table.StartingChips,
		})
	}

	policy := bot.New(profiles, rng, logger)
	coach := newCoach(cli, cfg, logger)

	history := []engine.HandHistoryEntry{}
	dealer := -1 // SetupHand advances the button to seat 0

	for hand := 1; hand <= hands; hand++ {
		if fundedSeats(players) < 2 {
			logger.Info("Session over, not enough funded seats", "hand", hand)
			break
		}

		state := eng.SetupHand(players, dealer, hand, history)
		dealer = state.Dealer

		for state.Phase < engine.Showdown && state.CurrentPlayer >= 0 {
			seat := state.CurrentPlayer
			if cli.Coach && seat == 0 {
				printCoaching(coach, state, seat)
			}

			decision := policy.Decide(state, seat)
			switch decision.Action {
			case bot.Fold:
				state = eng.Fold(state, seat)
			case bot.Check:
				state = eng.ApplyAction(state, seat, 0, "checks")
			case bot.Call:
				state = eng.ApplyAction(state, seat, decision.Amount, "calls")
			case bot.Raise:
				state = eng.ApplyAction(state, seat, decision.Amount, "raises")
			}
			if state.Phase >= engine.Showdown {
				break
			}
			state = eng.AdvanceTurn(state)
		}

		for _, line := range state.RoundLog {
			fmt.Println(line)
		}
		fmt.Println()

		players = state.Players
		history = state.History
	}

	fmt.Println(summaryStyle.Render("=== Session summary ==="))
	for _, p := range players {
		fmt.Printf("%-12s %6d chips\n", p.Name, p.Chips)
	}
	fmt.Printf("Hands played: %d\n", len(history))
	return nil
}

func newCoach(cli CLI, cfg *config.Config, logger *log.Logger) *advisor.Advisor {
	model := "gpt-4o-mini"
	keyEnv := "OPENAI_API_KEY"
	if cfg.Advisor != nil {
		model = cfg.Advisor.Model
		keyEnv = cfg.Advisor.APIKeyEnv
	}
	apiKey := ""
	if cli.Coach {
		apiKey = os.Getenv(keyEnv)
	}
	return advisor.New(apiKey, model, logger)
}

// printCoaching fetches advice and banter concurrently; both degrade to
// fixed fallbacks, so a dead service never stalls the hand.
func printCoaching(coach *advisor.Advisor, state engine.GameState, seat int) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	player := state.Players[seat]
	situation := advisor.Situation{
		HoleCards: player.HoleCards,
		Community: state.Community,
		Pot:       state.Pot,
		ToCall:    state.ToCall(seat),
		Stack:     player.Chips,
		Phase:     state.Phase.String(),
		Opponents: opponentNames(state, seat),
	}

	var advice advisor.Advice
	var banter string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		advice = coach.Recommend(gctx, situation)
		return nil
	})
	g.Go(func() error {
		banter = coach.Banter(gctx, fmt.Sprintf("facing a bet of %d on the %s with pot %d",
			situation.ToCall, situation.Phase, situation.Pot))
		return nil
	})
	_ = g.Wait()

	fmt.Printf("[coach] %s - %s (win %s", advice.Action, advice.Rationale, advice.WinProbability)
	if advice.PotOdds != "" {
		fmt.Printf(", pot odds %s", advice.PotOdds)
	}
	fmt.Println(")")
	if banter != advisor.FallbackBanter {
		fmt.Printf("[table] %s\n", banter)
	}
}

func opponentNames(state engine.GameState, seat int) []string {
	names := make([]string, 0, len(state.Players)-1)
	for i, p := range state.Players {
		if i != seat && p.Active {
			names = append(names, p.Name)
		}
	}
	return names
}

func fundedSeats(players []engine.Player) int {
	n := 0
	for _, p := range players {
		if p.Chips > 0 {
			n++
		}
	}
	return n
}
