// Package simulator plays many scripted sessions against the engine to
// measure how a fixed hitting strategy fares against the dealer policy.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/oichokabu/internal/game"
	"github.com/lox/oichokabu/internal/randutil"
	"github.com/lox/oichokabu/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions         int
	RoundsPerSession int
	Seed             int64
	Bet              int
	StartingChips    int
	HitBelow         game.Score // Player hits a two-card hand scoring below this
	Workers          int
	Logger           *log.Logger
}

// DefaultConfig returns a configuration that plays the dealer's own
// two-card rule with default stakes.
func DefaultConfig() Config {
	return Config{
		Sessions:         100,
		RoundsPerSession: 100,
		Seed:             1,
		Bet:              game.DefaultBet,
		StartingChips:    game.DefaultStartingChips,
		HitBelow:         5,
		Workers:          runtime.NumCPU(),
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.RoundsPerSession <= 0 {
		return fmt.Errorf("rounds per session must be positive, got %d", c.RoundsPerSession)
	}
	if c.StartingChips < game.MinBet {
		return fmt.Errorf("starting chips must be at least %d, got %d", game.MinBet, c.StartingChips)
	}
	if c.Bet < game.MinBet {
		return fmt.Errorf("bet must be at least %d, got %d", game.MinBet, c.Bet)
	}
	if c.HitBelow < 0 || c.HitBelow > 10 {
		return fmt.Errorf("hit-below must be between 0 and 10, got %d", c.HitBelow)
	}
	return nil
}

// Simulator runs Oicho-Kabu session simulations
type Simulator struct {
	config Config
	logger *log.Logger
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = 1
	}
	logger := config.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Simulator{
		config: config,
		logger: logger.WithPrefix("simulator"),
	}
}

// Run plays every session and returns the merged statistics. Sessions run in
// parallel, each on its own engine seeded with Seed+index, so results do not
// depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	results := make([]*statistics.Statistics, s.config.Sessions)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)

	for i := 0; i < s.config.Sessions; i++ {
		g.Go(func() error {
			stats, err := s.playSession(ctx, i)
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			results[i] = stats
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := statistics.New()
	for _, r := range results {
		merged.Merge(r)
	}

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.logger.Info("Simulation complete",
		"sessions", s.config.Sessions,
		"rounds", merged.Rounds,
		"net", merged.NetChips,
		"gameOvers", merged.GameOvers)
	return merged, nil
}

// playSession plays up to RoundsPerSession rounds, stopping early when the
// session runs out of chips.
func (s *Simulator) playSession(ctx context.Context, index int) (*statistics.Statistics, error) {
	seed := s.config.Seed + int64(index)
	stats := statistics.New()
	bus := game.NewEventBus()
	bus.Subscribe(stats)

	engine := game.NewEngine(
		game.WithChips(s.config.StartingChips),
		game.WithRNG(randutil.New(seed)),
		game.WithEventBus(bus),
		game.WithLogger(s.logger),
	)

	for round := 0; round < s.config.RoundsPerSession; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		snap, err := engine.StartRound(s.config.Bet)
		if errors.Is(err, game.ErrInsufficientFunds) {
			s.logger.Debug("Session out of chips", "session", index, "seed", seed, "rounds", round)
			break
		}
		if err != nil {
			return nil, err
		}

		if ShouldHit(snap, s.config.HitBelow) {
			if _, err := engine.Hit(); err != nil {
				return nil, err
			}
		}

		snap, err = engine.Stand()
		if err != nil {
			return nil, err
		}
		if snap.Phase == game.GameOver {
			break
		}
	}

	return stats, nil
}

// ShouldHit is the scripted player's rule: take a third card on a two-card
// hand scoring below threshold. Shippin and Kuppin always stand.
func ShouldHit(snap game.Snapshot, threshold game.Score) bool {
	return snap.Phase == game.PlayerTurn && len(snap.Player) == 2 && snap.PlayerScore < threshold
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics, cfg Config) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS (hit below %d, bet %d) ===\n", cfg.HitBelow, cfg.Bet)
	fmt.Fprintf(w, "Sessions: %d  Rounds played: %d  Busted sessions: %d\n",
		cfg.Sessions, stats.Rounds, stats.GameOvers)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Win/Lose/Tie: %d/%d/%d (%.2f%% wins)\n",
		stats.Wins, stats.Losses, stats.Ties, stats.WinRate()*100)
	fmt.Fprintf(w, "Mean: %.4f chips/round\n", stats.Mean())
	fmt.Fprintf(w, "Median: %.4f chips/round\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f chips\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f chips\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] chips/round\n", low, high)

	fmt.Fprintf(w, "\n=== HAND ANALYSIS ===\n")
	for _, class := range []game.Class{game.Arashi, game.Shippin, game.Kuppin, game.Kabu, game.Ordinary} {
		fmt.Fprintf(w, "%-9s player %6d  dealer %6d\n",
			class, stats.PlayerClasses[class], stats.DealerClasses[class])
	}
	if stats.Rounds > 0 {
		fmt.Fprintf(w, "Player hit rate: %.1f%%  Dealer draw rate: %.1f%%\n",
			float64(stats.PlayerHits)/float64(stats.Rounds)*100,
			float64(stats.DealerDraws)/float64(stats.Rounds)*100)
	}
}

// Report is the machine-readable form of a simulation result
type Report struct {
	Sessions      int                `json:"sessions"`
	Seed          int64              `json:"seed"`
	Bet           int                `json:"bet"`
	StartingChips int                `json:"starting_chips"`
	HitBelow      int                `json:"hit_below"`
	Rounds        int                `json:"rounds"`
	Wins          int                `json:"wins"`
	Losses        int                `json:"losses"`
	Ties          int                `json:"ties"`
	GameOvers     int                `json:"game_overs"`
	NetChips      int                `json:"net_chips"`
	Mean          float64            `json:"mean"`
	StdDev        float64            `json:"std_dev"`
	CI95          [2]float64         `json:"ci95"`
	PlayerClasses map[string]int     `json:"player_classes"`
	DealerClasses map[string]int     `json:"dealer_classes"`
	Rates         map[string]float64 `json:"rates"`
}

// NewReport summarises stats for writing to disk
func NewReport(stats *statistics.Statistics, cfg Config) Report {
	low, high := stats.ConfidenceInterval95()
	r := Report{
		Sessions:      cfg.Sessions,
		Seed:          cfg.Seed,
		Bet:           cfg.Bet,
		StartingChips: cfg.StartingChips,
		HitBelow:      int(cfg.HitBelow),
		Rounds:        stats.Rounds,
		Wins:          stats.Wins,
		Losses:        stats.Losses,
		Ties:          stats.Ties,
		GameOvers:     stats.GameOvers,
		NetChips:      stats.NetChips,
		Mean:          stats.Mean(),
		StdDev:        stats.StdDev(),
		CI95:          [2]float64{low, high},
		PlayerClasses: make(map[string]int),
		DealerClasses: make(map[string]int),
		Rates:         map[string]float64{"win": stats.WinRate()},
	}
	for class := game.Ordinary; class <= game.Arashi; class++ {
		r.PlayerClasses[class.String()] = stats.PlayerClasses[class]
		r.DealerClasses[class.String()] = stats.DealerClasses[class]
	}
	if stats.Rounds > 0 {
		r.Rates["player_hit"] = float64(stats.PlayerHits) / float64(stats.Rounds)
		r.Rates["dealer_draw"] = float64(stats.DealerDraws) / float64(stats.Rounds)
	}
	return r
}
