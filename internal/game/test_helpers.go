package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/oichokabu/internal/deck"
)

// stackedEngine returns an engine whose rounds are dealt from the given card
// lists in order: P, P, D, D, then any hits and dealer draws. One list is used
// per round; running out of lists panics.
func stackedEngine(chips int, rounds []string, opts ...EngineOption) *Engine {
	next := 0
	source := func() *deck.Deck {
		cards := deck.MustParseCards(rounds[next])
		next++
		return deck.Stacked(cards...)
	}
	base := []EngineOption{
		WithChips(chips),
		WithDeckSource(source),
		WithLogger(quietLogger()),
	}
	return NewEngine(append(base, opts...)...)
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// recorder collects published events
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *recorder) types() []EventType {
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
