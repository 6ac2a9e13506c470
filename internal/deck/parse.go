package deck

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCard parses a single card in "<rank><suit>" notation, e.g. "1s",
// "10h" or "Td". Suits are s, h, d and c; case is ignored.
func ParseCard(s string) (Card, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) < 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 's':
		suit = Spades
	case 'h':
		suit = Hearts
	case 'd':
		suit = Diamonds
	case 'c':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit in card %q", s)
	}

	rankPart := s[:len(s)-1]
	if rankPart == "t" {
		rankPart = "10"
	}
	n, err := strconv.Atoi(rankPart)
	if err != nil || !Rank(n).Valid() {
		return Card{}, fmt.Errorf("invalid rank in card %q", s)
	}

	return NewCard(suit, Rank(n)), nil
}

// ParseCards parses whitespace separated cards, e.g. "1s 4h 9d"
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is like ParseCards but panics on error
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
