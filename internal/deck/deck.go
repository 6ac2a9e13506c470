package deck

import (
	"errors"
	rand "math/rand/v2"

	"github.com/lox/oichokabu/internal/randutil"
)

// Size is the number of cards in a full deck: four suits of ranks 1..10
const Size = 40

// ErrEmptyDeck is returned when drawing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is an ordered sequence of cards. Cards are drawn from the end of the
// sequence, so after Shuffle the last element is the top of the deck.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a full 40-card deck in canonical order. The deck is not
// shuffled; a nil rng is replaced with a randomly seeded one.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = randutil.NewRandom()
	}
	d := &Deck{
		cards: make([]Card, 0, Size),
		rng:   rng,
	}
	d.Build()
	return d
}

// NewShuffled creates a full deck and shuffles it
func NewShuffled(rng *rand.Rand) *Deck {
	d := New(rng)
	d.Shuffle()
	return d
}

// Stacked returns a deck that deals the given cards in order. It is meant
// for fixtures where the exact deal has to be known up front.
func Stacked(cards ...Card) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   randutil.New(0),
	}
	for i, c := range cards {
		d.cards[len(cards)-1-i] = c
	}
	return d
}

// Build restores the deck to the 40 cards in canonical order: suits in
// Suits order and ranks ascending within each suit.
func (d *Deck) Build() {
	d.cards = d.cards[:0]
	for _, suit := range Suits {
		for rank := MinRank; rank <= MaxRank; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
}

// Shuffle randomizes the order of cards in the deck using a backward
// Fisher-Yates pass.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top (last) card of the deck
func (d *Deck) Draw() (Card, error) {
	n := len(d.cards)
	if n == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[n-1]
	d.cards = d.cards[:n-1]
	return card, nil
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
