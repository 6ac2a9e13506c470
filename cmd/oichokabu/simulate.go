package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/oichokabu/internal/game"
	"github.com/lox/oichokabu/internal/history"
	"github.com/lox/oichokabu/internal/simulator"
)

type SimulateCmd struct {
	Sessions int    `default:"1000" help:"Number of sessions to simulate"`
	Rounds   int    `default:"100" help:"Maximum rounds per session"`
	Seed     int64  `default:"0" help:"RNG seed (0 for random)"`
	Bet      int    `default:"100" help:"Bet per round"`
	Chips    int    `default:"1000" help:"Starting chips per session"`
	HitBelow int    `default:"5" help:"Hit on a two-card score below this"`
	Workers  int    `help:"Parallel sessions (defaults to CPU count)"`
	Output   string `help:"Write merged statistics to this JSON file"`
	Verbose  bool   `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	level := log.InfoLevel
	if c.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cfg := simulator.Config{
		Sessions:         c.Sessions,
		RoundsPerSession: c.Rounds,
		Seed:             seed,
		Bet:              c.Bet,
		StartingChips:    c.Chips,
		HitBelow:         game.Score(c.HitBelow),
		Workers:          workers,
		Logger:           logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting simulation",
		"sessions", cfg.Sessions,
		"rounds", cfg.RoundsPerSession,
		"seed", seed,
		"workers", workers)

	start := time.Now()
	stats, err := simulator.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, stats, cfg)
	if c.Output != "" {
		if err := history.WriteJSON(c.Output, simulator.NewReport(stats, cfg)); err != nil {
			return fmt.Errorf("writing %s: %w", c.Output, err)
		}
		logger.Info("Statistics written", "file", c.Output)
	}
	fmt.Printf("\nSeed: %d  Duration: %v\n", seed, time.Since(start).Round(time.Millisecond))
	return nil
}
