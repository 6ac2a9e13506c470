package game

import (
	"fmt"

	"github.com/lox/oichokabu/internal/deck"
)

// Score is the value of a hand. Larger scores win, so plain integer
// comparison gives the hand ranking:
//
//	100+rank  Arashi (three cards of one rank)
//	50        Shippin (1 and 4)
//	40        Kuppin (1 and 9)
//	0..9      total modulo 10, Kabu at 9
type Score int

const (
	ShippinScore Score = 50
	KuppinScore  Score = 40
	KabuScore    Score = 9
	arashiBase   Score = 100
)

// Class is the named category a score falls into
type Class int

const (
	Ordinary Class = iota
	Kabu
	Kuppin
	Shippin
	Arashi
)

// String returns the string representation of a class
func (c Class) String() string {
	switch c {
	case Ordinary:
		return "Ordinary"
	case Kabu:
		return "Kabu"
	case Kuppin:
		return "Kuppin"
	case Shippin:
		return "Shippin"
	case Arashi:
		return "Arashi"
	default:
		return "Unknown"
	}
}

// Evaluate scores a hand. The triple check applies only to three-card hands
// and the Shippin and Kuppin checks only to two-card hands; everything else
// scores the sum of ranks modulo 10. An empty hand scores 0.
func Evaluate(cards []deck.Card) Score {
	if len(cards) == 0 {
		return 0
	}

	if len(cards) == 3 && cards[0].Rank == cards[1].Rank && cards[1].Rank == cards[2].Rank {
		return arashiBase + Score(cards[0].Rank)
	}

	if len(cards) == 2 {
		lo, hi := cards[0].Rank, cards[1].Rank
		if lo > hi {
			lo, hi = hi, lo
		}
		switch {
		case lo == 1 && hi == 4:
			return ShippinScore
		case lo == 1 && hi == 9:
			return KuppinScore
		}
	}

	sum := 0
	for _, c := range cards {
		sum += c.Value()
	}
	return Score(sum % 10)
}

// Class returns the named category of the score
func (s Score) Class() Class {
	switch {
	case s > arashiBase:
		return Arashi
	case s == ShippinScore:
		return Shippin
	case s == KuppinScore:
		return Kuppin
	case s == KabuScore:
		return Kabu
	default:
		return Ordinary
	}
}

// ArashiRank returns the rank of the triple for an Arashi score and 0 otherwise
func (s Score) ArashiRank() deck.Rank {
	if s.Class() != Arashi {
		return 0
	}
	return deck.Rank(s - arashiBase)
}

// String returns the display label of the score
func (s Score) String() string {
	switch s.Class() {
	case Arashi:
		return fmt.Sprintf("Arashi (%d)", s.ArashiRank())
	case Shippin:
		return "Shippin"
	case Kuppin:
		return "Kuppin"
	case Kabu:
		return fmt.Sprintf("Kabu (%d)", int(s))
	default:
		return fmt.Sprintf("%d", int(s))
	}
}

// Compare returns -1 if a loses to b, 1 if a beats b and 0 on a tie
func Compare(a, b Score) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
