// Package history records settled rounds so a session can be reviewed or
// replayed after the program exits.
package history

import (
	"strings"
	"time"

	"github.com/lox/oichokabu/internal/deck"
	"github.com/lox/oichokabu/internal/game"
)

// Record is one settled round as written to a history file
type Record struct {
	RoundID     string    `json:"round_id"`
	Round       int       `json:"round"`
	SettledAt   time.Time `json:"settled_at"`
	Bet         int       `json:"bet"`
	Player      []string  `json:"player"`
	Dealer      []string  `json:"dealer"`
	PlayerScore string    `json:"player_score"`
	DealerScore string    `json:"dealer_score"`
	Result      string    `json:"result"`
	Net         int       `json:"net"`
	ChipsAfter  int       `json:"chips_after"`
}

// Session is the file format: every round plus how the session ended
type Session struct {
	StartingChips int      `json:"starting_chips"`
	FinalChips    int      `json:"final_chips"`
	GameOver      bool     `json:"game_over"`
	Rounds        []Record `json:"rounds"`
}

// Recorder collects settled rounds from an engine's event bus
type Recorder struct {
	startingChips int
	session       Session
}

// NewRecorder creates a recorder for a session starting with chips
func NewRecorder(startingChips int) *Recorder {
	return &Recorder{
		startingChips: startingChips,
		session: Session{
			StartingChips: startingChips,
			FinalChips:    startingChips,
			Rounds:        []Record{},
		},
	}
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundSettledEvent:
		r.session.Rounds = append(r.session.Rounds, Record{
			RoundID:     e.RoundID,
			Round:       e.Round,
			SettledAt:   e.Timestamp(),
			Bet:         e.Bet,
			Player:      notation(e.PlayerCards),
			Dealer:      notation(e.DealerCards),
			PlayerScore: e.PlayerScore.String(),
			DealerScore: e.DealerScore.String(),
			Result:      e.Result.String(),
			Net:         e.Net(),
			ChipsAfter:  e.ChipsAfter,
		})
		r.session.FinalChips = e.ChipsAfter
	case game.GameOverEvent:
		r.session.GameOver = true
		r.session.FinalChips = e.Chips
	}
}

// Session returns a copy of everything recorded so far
func (r *Recorder) Session() Session {
	s := r.session
	s.Rounds = append([]Record(nil), r.session.Rounds...)
	return s
}

// Len returns the number of recorded rounds
func (r *Recorder) Len() int {
	return len(r.session.Rounds)
}

// Save writes the session to path as indented JSON
func (r *Recorder) Save(path string) error {
	return WriteJSON(path, r.Session())
}

func notation(cards []deck.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Notation()
	}
	return out
}

// Hands parses a record's cards back into hands
func (rec Record) Hands() (player, dealer game.Hand, err error) {
	p, err := deck.ParseCards(strings.Join(rec.Player, " "))
	if err != nil {
		return nil, nil, err
	}
	d, err := deck.ParseCards(strings.Join(rec.Dealer, " "))
	if err != nil {
		return nil, nil, err
	}
	return game.Hand(p), game.Hand(d), nil
}
