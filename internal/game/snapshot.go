package game

import "github.com/lox/oichokabu/internal/deck"

// CardView is a card as a front end may show it. A concealed card carries
// the zero Card so its value cannot leak.
type CardView struct {
	Card      deck.Card
	Concealed bool
}

// Snapshot is an immutable view of the engine after an action
type Snapshot struct {
	RoundID        string
	Round          int
	Phase          Phase
	Chips          int
	Bet            int
	Player         []CardView
	Dealer         []CardView
	PlayerScore    Score
	DealerScore    Score // zero until DealerRevealed
	DealerRevealed bool
	Result         Result
}

// PlayerLabel returns the display label for the player's score
func (s Snapshot) PlayerLabel() string {
	if len(s.Player) == 0 {
		return "-"
	}
	return s.PlayerScore.String()
}

// DealerLabel returns the display label for the dealer's score, or "-"
// while the dealer's hand is concealed
func (s Snapshot) DealerLabel() string {
	if !s.DealerRevealed {
		return "-"
	}
	return s.DealerScore.String()
}

// InRound reports whether cards are on the table for a round in progress
func (s Snapshot) InRound() bool {
	return s.Phase == PlayerTurn || s.Phase == DealerTurn
}

// ClampBet limits a requested bet to [MinBet, chips]. With chips below
// MinBet the result is MinBet, which StartRound will refuse.
func ClampBet(requested, chips int) int {
	return max(MinBet, min(requested, chips))
}

func viewHand(h Hand, concealAfterFirst bool) []CardView {
	views := make([]CardView, len(h))
	for i, c := range h {
		if concealAfterFirst && i > 0 {
			views[i] = CardView{Concealed: true}
			continue
		}
		views[i] = CardView{Card: c}
	}
	return views
}
