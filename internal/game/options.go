package game

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/oichokabu/internal/deck"
	"github.com/lox/oichokabu/internal/randutil"
)

const (
	// MinBet is the smallest allowed bet. A balance below it ends the game.
	MinBet = 10

	// DefaultStartingChips is the balance of a new game
	DefaultStartingChips = 1000

	// DefaultBet is the bet a front end offers before the player changes it
	DefaultBet = 100
)

// EngineOption configures an Engine during creation.
type EngineOption func(*engineConfig)

// engineConfig holds all configuration for creating an engine.
type engineConfig struct {
	chips      int
	rng        *rand.Rand
	deckSource func() *deck.Deck // If set, overrides rng for deck creation
	logger     *log.Logger
	bus        EventBus
	clock      quartz.Clock
}

func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		chips: DefaultStartingChips,
	}
}

// WithChips sets the starting balance. Default is DefaultStartingChips.
func WithChips(chips int) EngineOption {
	return func(c *engineConfig) {
		c.chips = chips
	}
}

// WithRNG sets the random source used to shuffle each round's deck.
// Default is a randomly seeded generator.
func WithRNG(rng *rand.Rand) EngineOption {
	return func(c *engineConfig) {
		c.rng = rng
	}
}

// WithSeed is shorthand for WithRNG(randutil.FromSeed(seed)).
func WithSeed(seed int64) EngineOption {
	return func(c *engineConfig) {
		c.rng = randutil.FromSeed(seed)
	}
}

// WithDeckSource sets a function that supplies the deck for every round.
// The returned deck is used as is, without shuffling, which lets tests
// stack the deal.
func WithDeckSource(source func() *deck.Deck) EngineOption {
	return func(c *engineConfig) {
		c.deckSource = source
	}
}

// WithLogger sets the logger. Default discards all output.
func WithLogger(logger *log.Logger) EngineOption {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithEventBus sets the bus round events are published on.
func WithEventBus(bus EventBus) EngineOption {
	return func(c *engineConfig) {
		c.bus = bus
	}
}

// WithClock sets the clock used to timestamp events. Default is the real clock.
func WithClock(clock quartz.Clock) EngineOption {
	return func(c *engineConfig) {
		c.clock = clock
	}
}

func (c *engineConfig) fill() {
	if c.rng == nil {
		c.rng = randutil.NewRandom()
	}
	if c.logger == nil {
		c.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if c.bus == nil {
		c.bus = NewEventBus()
	}
	if c.clock == nil {
		c.clock = quartz.NewReal()
	}
	if c.chips < 0 {
		c.chips = 0
	}
}
