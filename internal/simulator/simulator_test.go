package simulator

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/oichokabu/internal/deck"
	"github.com/lox/oichokabu/internal/game"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Sessions = 8
	cfg.RoundsPerSession = 50
	cfg.Seed = 12345
	cfg.Workers = 4
	cfg.Logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	return cfg
}

func TestNew(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 0

	sim := New(cfg)
	require.NotNil(t, sim)
	assert.Equal(t, 1, sim.config.Workers)
	assert.Equal(t, 8, sim.config.Sessions)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no sessions", func(c *Config) { c.Sessions = 0 }},
		{"no rounds", func(c *Config) { c.RoundsPerSession = 0 }},
		{"bet below minimum", func(c *Config) { c.Bet = 5 }},
		{"chips below minimum", func(c *Config) { c.StartingChips = 9 }},
		{"threshold out of range", func(c *Config) { c.HitBelow = 11 }},
	}

	require.NoError(t, testConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())

			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := testConfig()
	a, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	cfg.Workers = 1
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Rounds, b.Rounds)
	assert.Equal(t, a.NetChips, b.NetChips)
	assert.Equal(t, a.Values, b.Values, "per-round results are merged in session order")
	assert.Equal(t, a.PlayerClasses, b.PlayerClasses)
}

func TestRunProducesConsistentStatistics(t *testing.T) {
	cfg := testConfig()
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Greater(t, stats.Rounds, 0)
	assert.LessOrEqual(t, stats.Rounds, cfg.Sessions*cfg.RoundsPerSession)
	assert.Equal(t, stats.Rounds, stats.Wins+stats.Losses+stats.Ties)
	require.NoError(t, stats.Validate())

	// every round moves exactly one bet or nothing
	for _, v := range stats.Values {
		assert.Contains(t, []float64{-100, 0, 100}, v)
	}
}

func TestRunStopsOnGameOver(t *testing.T) {
	cfg := testConfig()
	cfg.StartingChips = 100
	cfg.Bet = 100
	cfg.RoundsPerSession = 1000

	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Greater(t, stats.GameOvers, 0)
	assert.Less(t, stats.Rounds, cfg.Sessions*cfg.RoundsPerSession)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(testConfig()).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestShouldHit(t *testing.T) {
	snapWith := func(cards string) game.Snapshot {
		hand := game.Hand(deck.MustParseCards(cards))
		views := make([]game.CardView, len(hand))
		for i, c := range hand {
			views[i] = game.CardView{Card: c}
		}
		return game.Snapshot{Phase: game.PlayerTurn, Player: views, PlayerScore: hand.Score()}
	}

	assert.True(t, ShouldHit(snapWith("1s 3h"), 5))
	assert.False(t, ShouldHit(snapWith("2s 3h"), 5))
	assert.False(t, ShouldHit(snapWith("1s 4h"), 10), "shippin never hits")
	assert.False(t, ShouldHit(snapWith("1s 1h 1d"), 10), "three cards never hit")
	assert.False(t, ShouldHit(snapWith("1s 3h"), 0))

	settled := snapWith("1s 3h")
	settled.Phase = game.Settled
	assert.False(t, ShouldHit(settled, 5))
}

func TestPrintSummary(t *testing.T) {
	cfg := testConfig()
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats, cfg)
	out := buf.String()
	assert.Contains(t, out, "=== RESULTS (hit below 5, bet 100) ===")
	assert.Contains(t, out, "Win/Lose/Tie:")
	assert.Contains(t, out, "Arashi")
}

func TestNewReport(t *testing.T) {
	cfg := testConfig()
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	r := NewReport(stats, cfg)
	assert.Equal(t, cfg.Sessions, r.Sessions)
	assert.Equal(t, stats.Rounds, r.Rounds)
	assert.Equal(t, stats.NetChips, r.NetChips)
	assert.LessOrEqual(t, r.CI95[0], r.Mean)
	assert.GreaterOrEqual(t, r.CI95[1], r.Mean)

	total := 0
	for _, n := range r.PlayerClasses {
		total += n
	}
	assert.Equal(t, stats.Rounds, total)
	assert.Contains(t, r.Rates, "player_hit")
}
