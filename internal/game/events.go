package game

import (
	"time"

	"github.com/lox/oichokabu/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for round events
const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDrawn    EventType = "card_drawn"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeGameOver     EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published when the bet is locked and a round is dealt
type RoundStartEvent struct {
	RoundID   string
	Round     int
	Bet       int
	Chips     int
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(roundID string, round, bet, chips int, at time.Time) RoundStartEvent {
	return RoundStartEvent{
		RoundID:   roundID,
		Round:     round,
		Bet:       bet,
		Chips:     chips,
		timestamp: at,
	}
}

// CardDrawnEvent is published for every card drawn into a hand. Dealer cards
// after the first are published with Concealed set and a zero Card, so that
// subscribers showing events to the player do not reveal them early.
type CardDrawnEvent struct {
	RoundID   string
	Seat      Seat
	Card      deck.Card
	Concealed bool
	HandSize  int
	timestamp time.Time
}

func (e CardDrawnEvent) EventType() EventType { return EventTypeCardDrawn }
func (e CardDrawnEvent) Timestamp() time.Time { return e.timestamp }

// NewCardDrawnEvent creates a new card drawn event
func NewCardDrawnEvent(roundID string, seat Seat, card deck.Card, concealed bool, handSize int, at time.Time) CardDrawnEvent {
	if concealed {
		card = deck.Card{}
	}
	return CardDrawnEvent{
		RoundID:   roundID,
		Seat:      seat,
		Card:      card,
		Concealed: concealed,
		HandSize:  handSize,
		timestamp: at,
	}
}

// RoundSettledEvent is published when a round is compared and paid out
type RoundSettledEvent struct {
	RoundID     string
	Round       int
	Bet         int
	PlayerCards Hand
	DealerCards Hand
	PlayerScore Score
	DealerScore Score
	Result      Result
	ChipsAfter  int
	timestamp   time.Time
}

func (e RoundSettledEvent) EventType() EventType { return EventTypeRoundSettled }
func (e RoundSettledEvent) Timestamp() time.Time { return e.timestamp }

// Net returns the chip change the round caused for the player
func (e RoundSettledEvent) Net() int {
	switch e.Result {
	case Win:
		return e.Bet
	case Lose:
		return -e.Bet
	default:
		return 0
	}
}

// NewRoundSettledEvent creates a new round settled event
func NewRoundSettledEvent(roundID string, round, bet int, player, dealer Hand, result Result, chipsAfter int, at time.Time) RoundSettledEvent {
	return RoundSettledEvent{
		RoundID:     roundID,
		Round:       round,
		Bet:         bet,
		PlayerCards: player.Clone(),
		DealerCards: dealer.Clone(),
		PlayerScore: player.Score(),
		DealerScore: dealer.Score(),
		Result:      result,
		ChipsAfter:  chipsAfter,
		timestamp:   at,
	}
}

// GameOverEvent is published once when the balance can no longer cover MinBet.
// Front ends decide when and how to tell the player.
type GameOverEvent struct {
	Chips     int
	Rounds    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(chips, rounds int, at time.Time) GameOverEvent {
	return GameOverEvent{
		Chips:     chips,
		Rounds:    rounds,
		timestamp: at,
	}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventSubscriberFunc adapts a function to EventSubscriber
type EventSubscriberFunc func(event GameEvent)

// OnEvent calls f(event)
func (f EventSubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus. Delivery is synchronous and
// in subscription order.
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. EventSubscriberFunc
// values are not comparable and must not be passed here.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}
