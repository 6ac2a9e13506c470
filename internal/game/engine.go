package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/oichokabu/internal/deck"
)

// Engine runs Oicho-Kabu rounds for one player against the house.
type Engine struct {
	chips   int
	bet     int
	phase   Phase
	result  Result
	round   int
	roundID string

	player Hand
	dealer Hand
	deck   *deck.Deck

	rng        *rand.Rand
	deckSource func() *deck.Deck
	logger     *log.Logger
	bus        EventBus
	clock      quartz.Clock
}

// NewEngine creates an engine in the NotStarted phase.
//
// Example usage:
//
//	e := NewEngine()                                  // 1000 chips, random shuffles
//	e := NewEngine(WithChips(500), WithSeed(42))      // reproducible
//	e := NewEngine(WithEventBus(bus), WithLogger(l))  // observed
func NewEngine(opts ...EngineOption) *Engine {
	cfg := defaultEngineConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.fill()

	e := &Engine{
		chips:      cfg.chips,
		phase:      NotStarted,
		rng:        cfg.rng,
		deckSource: cfg.deckSource,
		logger:     cfg.logger.WithPrefix("engine"),
		bus:        cfg.bus,
		clock:      cfg.clock,
	}
	return e
}

// Chips returns the current balance
func (e *Engine) Chips() int {
	return e.chips
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	return e.phase
}

// Bus returns the event bus the engine publishes on
func (e *Engine) Bus() EventBus {
	return e.bus
}

// CanStartRound reports whether StartRound would deal a new round
func (e *Engine) CanStartRound() bool {
	return (e.phase == NotStarted || e.phase == Settled) && e.chips >= MinBet
}

// CanHit reports whether Hit would draw a card
func (e *Engine) CanHit() bool {
	return e.phase == PlayerTurn && !e.player.Full()
}

// CanStand reports whether Stand would end the player's turn
func (e *Engine) CanStand() bool {
	return e.phase == PlayerTurn
}

// StartRound locks in a bet and deals a new round. The requested bet is
// clamped to [MinBet, chips]. A balance below MinBet ends the game with
// ErrInsufficientFunds; calling it while a round is in progress returns
// ErrInvalidState and changes nothing.
func (e *Engine) StartRound(requestedBet int) (Snapshot, error) {
	switch e.phase {
	case GameOver:
		return e.Snapshot(), fmt.Errorf("start round with %d chips: %w", e.chips, ErrInsufficientFunds)
	case NotStarted, Settled:
	default:
		e.logger.Debug("Ignoring start round", "phase", e.phase)
		return e.Snapshot(), fmt.Errorf("start round during %s: %w", e.phase, ErrInvalidState)
	}

	if e.chips < MinBet {
		e.enterGameOver()
		return e.Snapshot(), fmt.Errorf("start round with %d chips: %w", e.chips, ErrInsufficientFunds)
	}

	e.phase = Betting
	e.bet = ClampBet(requestedBet, e.chips)
	e.round++
	e.roundID = uuid.Must(uuid.NewV7()).String()
	e.result = NoResult
	e.player = make(Hand, 0, MaxHandSize)
	e.dealer = make(Hand, 0, MaxHandSize)
	e.deck = e.newDeck()

	e.logger.Info("Starting round",
		"round", e.round,
		"id", e.roundID,
		"bet", e.bet,
		"requested", requestedBet,
		"chips", e.chips)
	e.bus.Publish(NewRoundStartEvent(e.roundID, e.round, e.bet, e.chips, e.clock.Now()))

	e.draw(PlayerSeat)
	e.draw(PlayerSeat)
	e.draw(DealerSeat)
	e.draw(DealerSeat)

	e.phase = PlayerTurn
	return e.Snapshot(), nil
}

// Hit draws a third card for the player. Outside the player's turn, or with
// three cards already held, nothing changes and ErrInvalidState is returned
// alongside the current snapshot.
func (e *Engine) Hit() (Snapshot, error) {
	if !e.CanHit() {
		e.logger.Debug("Ignoring hit", "phase", e.phase, "cards", e.player.Len())
		return e.Snapshot(), fmt.Errorf("hit during %s with %d cards: %w", e.phase, e.player.Len(), ErrInvalidState)
	}

	e.draw(PlayerSeat)
	return e.Snapshot(), nil
}

// Stand ends the player's turn. The dealer draws according to
// DealerShouldDraw and the round is settled before Stand returns. Outside the
// player's turn nothing changes and ErrInvalidState is returned.
func (e *Engine) Stand() (Snapshot, error) {
	if !e.CanStand() {
		e.logger.Debug("Ignoring stand", "phase", e.phase)
		return e.Snapshot(), fmt.Errorf("stand during %s: %w", e.phase, ErrInvalidState)
	}

	e.phase = DealerTurn
	for DealerShouldDraw(e.dealer) {
		e.draw(DealerSeat)
	}

	e.settle()
	return e.Snapshot(), nil
}

// Snapshot returns the current view of the game
func (e *Engine) Snapshot() Snapshot {
	revealed := e.phase == Settled || (e.phase == GameOver && e.result != NoResult)
	snap := Snapshot{
		RoundID:        e.roundID,
		Round:          e.round,
		Phase:          e.phase,
		Chips:          e.chips,
		Bet:            e.bet,
		Player:         viewHand(e.player, false),
		Dealer:         viewHand(e.dealer, !revealed),
		PlayerScore:    e.player.Score(),
		DealerRevealed: revealed,
		Result:         e.result,
	}
	if revealed {
		snap.DealerScore = e.dealer.Score()
	}
	return snap
}

func (e *Engine) newDeck() *deck.Deck {
	if e.deckSource != nil {
		return e.deckSource()
	}
	return deck.NewShuffled(e.rng)
}

// draw moves the top card of the round's deck into a hand. Six draws at most
// come out of a 40-card deck, so running out is a bug, not a game state.
func (e *Engine) draw(seat Seat) {
	card, err := e.deck.Draw()
	if err != nil {
		panic(fmt.Errorf("round %d: drawing for %s with %d cards remaining: %w", e.round, seat, e.deck.Remaining(), err))
	}

	var size int
	concealed := false
	switch seat {
	case PlayerSeat:
		e.player = append(e.player, card)
		size = e.player.Len()
	case DealerSeat:
		e.dealer = append(e.dealer, card)
		size = e.dealer.Len()
		concealed = size > 1
	}

	e.logger.Debug("Card drawn", "seat", seat, "card", card, "size", size)
	e.bus.Publish(NewCardDrawnEvent(e.roundID, seat, card, concealed, size, e.clock.Now()))
}

// settle compares the hands, pays out and checks whether the game is over
func (e *Engine) settle() {
	playerScore := e.player.Score()
	dealerScore := e.dealer.Score()
	e.result = resultOf(playerScore, dealerScore)

	switch e.result {
	case Win:
		e.chips += e.bet
	case Lose:
		e.chips -= e.bet
	}
	e.phase = Settled

	e.logger.Info("Round settled",
		"round", e.round,
		"player", e.player,
		"playerScore", playerScore,
		"dealer", e.dealer,
		"dealerScore", dealerScore,
		"result", e.result,
		"chips", e.chips)
	e.bus.Publish(NewRoundSettledEvent(e.roundID, e.round, e.bet, e.player, e.dealer, e.result, e.chips, e.clock.Now()))

	if e.chips < MinBet {
		e.enterGameOver()
	}
}

func (e *Engine) enterGameOver() {
	e.phase = GameOver
	e.logger.Warn("Game over", "chips", e.chips, "rounds", e.round)
	e.bus.Publish(NewGameOverEvent(e.chips, e.round, e.clock.Now()))
}
