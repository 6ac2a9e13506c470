// Package statistics aggregates round results for a game session.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/lox/oichokabu/internal/game"
)

// RoundResult represents the outcome of a single settled round
type RoundResult struct {
	Bet         int
	Net         int // Chip change for the player: +Bet, -Bet or 0
	Result      game.Result
	PlayerScore game.Score
	DealerScore game.Score
	PlayerCards int
	DealerCards int
	ChipsAfter  int
}

// ResultFromEvent converts a settlement event into a RoundResult
func ResultFromEvent(e game.RoundSettledEvent) RoundResult {
	return RoundResult{
		Bet:         e.Bet,
		Net:         e.Net(),
		Result:      e.Result,
		PlayerScore: e.PlayerScore,
		DealerScore: e.DealerScore,
		PlayerCards: len(e.PlayerCards),
		DealerCards: len(e.DealerCards),
		ChipsAfter:  e.ChipsAfter,
	}
}

// Statistics tracks results across rounds. It subscribes to an engine's
// event bus and is not safe for concurrent use.
type Statistics struct {
	Rounds int
	Wins   int
	Losses int
	Ties   int

	SumNet  float64
	SumNet2 float64   // Sum of squares for variance calculation
	Values  []float64 // Net chips per round, for median/percentile

	ChipsWon  int // Total chips won on winning rounds
	ChipsLost int // Total chips lost on losing rounds
	NetChips  int

	BiggestWin  int
	BiggestLoss int
	PeakChips   int

	// Hand classes, indexed by game.Class
	PlayerClasses [game.Arashi + 1]int
	DealerClasses [game.Arashi + 1]int

	PlayerHits  int // Rounds where the player drew a third card
	DealerDraws int // Rounds where the dealer drew a third card
	GameOvers   int
}

// New creates an empty Statistics
func New() *Statistics {
	return &Statistics{}
}

// OnEvent implements game.EventSubscriber
func (s *Statistics) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		s.PeakChips = max(s.PeakChips, e.Chips)
	case game.RoundSettledEvent:
		s.Add(ResultFromEvent(e))
	case game.GameOverEvent:
		s.GameOvers++
	}
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	net := float64(result.Net)
	s.Rounds++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)
	s.NetChips += result.Net

	switch result.Result {
	case game.Win:
		s.Wins++
		s.ChipsWon += result.Net
		s.BiggestWin = max(s.BiggestWin, result.Net)
	case game.Lose:
		s.Losses++
		s.ChipsLost -= result.Net
		s.BiggestLoss = max(s.BiggestLoss, -result.Net)
	default:
		s.Ties++
	}

	s.PlayerClasses[result.PlayerScore.Class()]++
	s.DealerClasses[result.DealerScore.Class()]++
	if result.PlayerCards > 2 {
		s.PlayerHits++
	}
	if result.DealerCards > 2 {
		s.DealerDraws++
	}
	s.PeakChips = max(s.PeakChips, result.ChipsAfter)
}

// Merge folds another set of statistics into s
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.ChipsWon += other.ChipsWon
	s.ChipsLost += other.ChipsLost
	s.NetChips += other.NetChips
	s.BiggestWin = max(s.BiggestWin, other.BiggestWin)
	s.BiggestLoss = max(s.BiggestLoss, other.BiggestLoss)
	s.PeakChips = max(s.PeakChips, other.PeakChips)
	for i := range s.PlayerClasses {
		s.PlayerClasses[i] += other.PlayerClasses[i]
		s.DealerClasses[i] += other.DealerClasses[i]
	}
	s.PlayerHits += other.PlayerHits
	s.DealerDraws += other.DealerDraws
	s.GameOvers += other.GameOvers
}

// Mean returns the average net chips per round
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of net chips per round
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds won
func (s *Statistics) WinRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Rounds)
}

// Median returns the median net result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the net result at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// IsLedgerBalanced checks that chips won minus chips lost equals the net
func (s *Statistics) IsLedgerBalanced() bool {
	return s.ChipsWon-s.ChipsLost == s.NetChips &&
		math.Abs(s.SumNet-float64(s.NetChips)) <= 1e-6
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: won=%d lost=%d net=%d sum=%.2f",
			s.ChipsWon, s.ChipsLost, s.NetChips, s.SumNet)
	}

	if s.Wins+s.Losses+s.Ties != s.Rounds {
		return fmt.Errorf("results (%d+%d+%d) do not match rounds (%d)",
			s.Wins, s.Losses, s.Ties, s.Rounds)
	}

	if len(s.Values) != s.Rounds {
		return fmt.Errorf("values length (%d) does not match rounds (%d)", len(s.Values), s.Rounds)
	}

	classTotal := 0
	for _, n := range s.PlayerClasses {
		classTotal += n
	}
	if classTotal != s.Rounds {
		return fmt.Errorf("player class total (%d) does not match rounds (%d)", classTotal, s.Rounds)
	}

	return nil
}

// Summary renders a short multi-line report
func (s *Statistics) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rounds: %d  W/L/T: %d/%d/%d  Win rate: %.1f%%\n",
		s.Rounds, s.Wins, s.Losses, s.Ties, s.WinRate()*100)
	lo, hi := s.ConfidenceInterval95()
	fmt.Fprintf(&b, "Net: %+d chips  Mean: %+.2f/round  95%% CI: [%+.2f, %+.2f]\n",
		s.NetChips, s.Mean(), lo, hi)
	fmt.Fprintf(&b, "Biggest win: %d  Biggest loss: %d  Peak stack: %d\n",
		s.BiggestWin, s.BiggestLoss, s.PeakChips)
	fmt.Fprintf(&b, "Player hands: Arashi %d, Shippin %d, Kuppin %d, Kabu %d",
		s.PlayerClasses[game.Arashi], s.PlayerClasses[game.Shippin],
		s.PlayerClasses[game.Kuppin], s.PlayerClasses[game.Kabu])
	return b.String()
}
