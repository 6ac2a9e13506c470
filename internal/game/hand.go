package game

import (
	"strings"

	"github.com/lox/oichokabu/internal/deck"
)

// MaxHandSize is the number of cards a hand can hold
const MaxHandSize = 3

// Seat identifies which side of the table a hand belongs to
type Seat int

const (
	PlayerSeat Seat = iota
	DealerSeat
)

// String returns the string representation of a seat
func (s Seat) String() string {
	switch s {
	case PlayerSeat:
		return "Player"
	case DealerSeat:
		return "Dealer"
	default:
		return "Unknown"
	}
}

// Hand is an ordered sequence of cards in the order they were drawn
type Hand []deck.Card

// Len returns the number of cards in the hand
func (h Hand) Len() int {
	return len(h)
}

// Full reports whether the hand already holds MaxHandSize cards
func (h Hand) Full() bool {
	return len(h) >= MaxHandSize
}

// Score evaluates the hand
func (h Hand) Score() Score {
	return Evaluate(h)
}

// Clone returns a copy of the hand that does not share storage
func (h Hand) Clone() Hand {
	if h == nil {
		return nil
	}
	out := make(Hand, len(h))
	copy(out, h)
	return out
}

// String returns the cards separated by spaces (e.g., "1♠ 4♥")
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
