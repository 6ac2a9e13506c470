package game

import (
	"fmt"
	"strings"

	"github.com/lox/oichokabu/internal/deck"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	Color    bool // Wrap cards and headers in ANSI escapes
	ShowIDs  bool // Include round IDs in round headers
	Currency string
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	if opts.Currency == "" {
		opts.Currency = "$"
	}
	return &EventFormatter{opts: opts}
}

// Format renders any event as a log line. Unknown events render as their type.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case CardDrawnEvent:
		return ef.FormatCardDrawn(e)
	case RoundSettledEvent:
		return ef.FormatRoundSettled(e)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	default:
		return event.EventType().String()
	}
}

// FormatRoundStart formats a round start event
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) string {
	header := ef.bold(fmt.Sprintf("*** ROUND %d ***", event.Round))
	if ef.opts.ShowIDs {
		header += " " + event.RoundID
	}
	return fmt.Sprintf("\n%s bet %s%d (stack %s%d)", header, ef.opts.Currency, event.Bet, ef.opts.Currency, event.Chips)
}

// FormatCardDrawn formats a card drawn event
func (ef *EventFormatter) FormatCardDrawn(event CardDrawnEvent) string {
	if event.Concealed {
		return fmt.Sprintf("%s: draws a face-down card", event.Seat)
	}
	return fmt.Sprintf("%s: draws %s", event.Seat, ef.formatCard(event.Card))
}

// FormatRoundSettled formats a round settled event
func (ef *EventFormatter) FormatRoundSettled(event RoundSettledEvent) string {
	var b strings.Builder
	b.WriteString(ef.bold("*** SHOWDOWN ***"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Player: %s  %s\n", ef.formatCards(event.PlayerCards), event.PlayerScore)
	fmt.Fprintf(&b, "Dealer: %s  %s\n", ef.formatCards(event.DealerCards), event.DealerScore)

	switch event.Result {
	case Win:
		fmt.Fprintf(&b, "You win %s%d", ef.opts.Currency, event.Bet)
	case Lose:
		fmt.Fprintf(&b, "You lose %s%d", ef.opts.Currency, event.Bet)
	default:
		b.WriteString("Push, bet returned")
	}
	fmt.Fprintf(&b, " (stack %s%d)", ef.opts.Currency, event.ChipsAfter)
	return b.String()
}

// FormatGameOver formats a game over event
func (ef *EventFormatter) FormatGameOver(event GameOverEvent) string {
	return ef.bold(fmt.Sprintf("*** GAME OVER *** %s%d left after %d rounds", ef.opts.Currency, event.Chips, event.Rounds))
}

func (ef *EventFormatter) formatCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, c := range cards {
		formatted[i] = ef.formatCard(c)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func (ef *EventFormatter) formatCard(card deck.Card) string {
	if !ef.opts.Color {
		return card.String()
	}
	if card.IsRed() {
		return fmt.Sprintf("\033[31m%s\033[0m", card.String())
	}
	return fmt.Sprintf("\033[30m%s\033[0m", card.String())
}

func (ef *EventFormatter) bold(s string) string {
	if !ef.opts.Color {
		return s
	}
	return "\033[1m" + s + "\033[0m"
}
