// Package advisor asks a language model for coaching text and table
// banter. It is a consumed external service, not part of the engine:
// every call degrades to a fixed fallback on failure or missing
// credentials and never blocks hand progression beyond the caller's
// context deadline.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"holdem-trainer/internal/deck"
)

// Situation describes the decision point the advisor is asked about
type Situation struct {
	HoleCards []deck.Card
	Community []deck.Card
	Pot       int
	ToCall    int
	Stack     int
	Phase     string
	Opponents []string
}

// Advice is a structured recommendation
type Advice struct {
	Action         string
	Rationale      string
	WinProbability string
	PotOdds        string
}

// FallbackAdvice is returned whenever the service cannot answer
var FallbackAdvice = Advice{
	Action:         "check/fold",
	Rationale:      "Coach unavailable; default to tight play.",
	WinProbability: "unknown",
}

// FallbackBanter is the table line used when the service cannot answer
const FallbackBanter = "..."

// Advisor wraps the chat-completion client. A zero API key leaves the
// advisor disabled and every call returns the fallback immediately.
type Advisor struct {
	client  openai.Client
	model   string
	enabled bool
	logger  *log.Logger
}

// New creates an advisor. Pass an empty apiKey to run disabled.
func New(apiKey, model string, logger *log.Logger) *Advisor {
	a := &Advisor{
		model:  model,
		logger: logger.WithPrefix("advisor"),
	}
	if apiKey == "" {
		a.logger.Debug("no API key; advisor disabled")
		return a
	}
	a.client = openai.NewClient(option.WithAPIKey(apiKey))
	a.enabled = true
	return a
}

// Recommend asks for a structured recommendation for the situation.
// Any failure returns FallbackAdvice.
func (a *Advisor) Recommend(ctx context.Context, s Situation) Advice {
	if !a.enabled {
		return FallbackAdvice
	}

	prompt := fmt.Sprintf(
		"Hole cards: %s. Board: %s. Phase: %s. Pot: %d. To call: %d. Stack: %d. Opponents: %s.\n"+
			"Reply on one line as: ACTION | RATIONALE | WIN_PROBABILITY | POT_ODDS. "+
			"ACTION is one of fold, check, call, raise. RATIONALE is one short sentence. "+
			"WIN_PROBABILITY like \"38%%\". POT_ODDS like \"3.5:1\" or \"-\".",
		formatCards(s.HoleCards), formatCards(s.Community), s.Phase, s.Pot, s.ToCall, s.Stack,
		strings.Join(s.Opponents, ", "))

	text, err := a.complete(ctx, "You are a concise Texas Hold'em coach.", prompt)
	if err != nil {
		a.logger.Warn("recommendation failed, using fallback", "error", err)
		return FallbackAdvice
	}

	parts := strings.Split(text, "|")
	if len(parts) < 3 {
		a.logger.Warn("unparseable recommendation, using fallback", "text", text)
		return FallbackAdvice
	}
	advice := Advice{
		Action:         strings.TrimSpace(parts[0]),
		Rationale:      strings.TrimSpace(parts[1]),
		WinProbability: strings.TrimSpace(parts[2]),
	}
	if len(parts) > 3 {
		advice.PotOdds = strings.TrimSpace(parts[3])
	}
	return advice
}

// Banter asks for a short in-character table line. Any failure returns
// FallbackBanter.
func (a *Advisor) Banter(ctx context.Context, situation string) string {
	if !a.enabled {
		return FallbackBanter
	}
	text, err := a.complete(ctx,
		"You are a poker table character. Reply with one short line of table talk, no quotes.",
		situation)
	if err != nil {
		a.logger.Warn("banter failed, using fallback", "error", err)
		return FallbackBanter
	}
	return strings.TrimSpace(text)
}

func (a *Advisor) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}

func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "none"
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return strings.Join(out, " ")
}
