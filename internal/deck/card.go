package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits lists the four suits in canonical deck order
var Suits = [...]Suit{Spades, Hearts, Diamonds, Clubs}

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Letter returns the single ASCII letter used in card notation
func (s Suit) Letter() string {
	switch s {
	case Spades:
		return "s"
	case Hearts:
		return "h"
	case Diamonds:
		return "d"
	case Clubs:
		return "c"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank is the face value of a card, 1 through 10
type Rank int

const (
	MinRank Rank = 1
	MaxRank Rank = 10
)

// Valid reports whether the rank is inside the 1..10 range
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

// String returns the string representation of a rank
func (r Rank) String() string {
	if !r.Valid() {
		return "?"
	}
	return fmt.Sprintf("%d", int(r))
}

// Card represents a playing card. Two cards with the same suit and rank are
// the same card.
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "7♥")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Notation returns the ASCII form accepted by ParseCard (e.g., "7h")
func (c Card) Notation() string {
	return c.Rank.String() + c.Suit.Letter()
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// Value returns the numeric value the card contributes to a hand total
func (c Card) Value() int {
	return int(c.Rank)
}

// IsZero reports whether c is the zero Card, which is not a playable card
func (c Card) IsZero() bool {
	return c == Card{}
}
