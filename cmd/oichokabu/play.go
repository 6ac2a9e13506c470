package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/oichokabu/internal/config"
	"github.com/lox/oichokabu/internal/game"
	"github.com/lox/oichokabu/internal/history"
	"github.com/lox/oichokabu/internal/statistics"
	"github.com/lox/oichokabu/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	Config  string `short:"c" default:"oichokabu.hcl" help:"Path to HCL configuration file"`
	Chips   int    `help:"Starting chips (overrides config)"`
	Bet     int    `help:"Default bet (overrides config)"`
	Seed    int64  `help:"RNG seed, 0 for random (overrides config)"`
	LogFile string `help:"Log file path (overrides config)"`
	History string `help:"Write the round history to this JSON file on exit (overrides config)"`
	Debug   bool   `short:"d" help:"Enable debug logging"`
	NoColor bool   `help:"Disable colour output"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// The TUI owns the terminal, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	level := cfg.LogLevel()
	if c.Debug {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "oichokabu",
		Level:           level,
	})
	logger.Info("Starting game",
		"chips", cfg.Game.StartingChips,
		"bet", cfg.Game.DefaultBet,
		"seed", cfg.Game.Seed,
		"config", c.Config)

	clock := quartz.NewReal()
	bus := game.NewEventBus()
	stats := statistics.New()
	bus.Subscribe(stats)
	recorder := history.NewRecorder(cfg.Game.StartingChips)
	bus.Subscribe(recorder)

	engine := game.NewEngine(
		game.WithChips(cfg.Game.StartingChips),
		game.WithSeed(cfg.Game.Seed),
		game.WithEventBus(bus),
		game.WithLogger(logger),
		game.WithClock(clock),
	)

	model := tui.New(engine, tui.Options{
		Logger:        logger,
		Clock:         clock,
		GameOverDelay: cfg.GameOverDelay(),
		DefaultBet:    cfg.Game.DefaultBet,
		Stats:         stats,
		Theme:         cfg.UI.Theme,
		Color:         !c.NoColor,
	})

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	if err := stats.Validate(); err != nil {
		logger.Error("Session statistics inconsistent", "error", err)
	}
	logger.Info("Game finished", "rounds", stats.Rounds, "net", stats.NetChips, "chips", engine.Chips())

	if cfg.UI.HistoryFile != "" && recorder.Len() > 0 {
		if err := recorder.Save(cfg.UI.HistoryFile); err != nil {
			return fmt.Errorf("saving history: %w", err)
		}
		logger.Info("History written", "file", cfg.UI.HistoryFile, "rounds", recorder.Len())
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Oicho-Kabu ♦ ♣ "))
	fmt.Println()
	fmt.Println(stats.Summary())
	fmt.Printf("Final stack: $%d\n", engine.Chips())
	return nil
}

// applyOverrides copies any flags that were set onto the loaded config
func (c *PlayCmd) applyOverrides(cfg *config.Config) {
	if c.Chips != 0 {
		cfg.Game.StartingChips = c.Chips
	}
	if c.Bet != 0 {
		cfg.Game.DefaultBet = c.Bet
	}
	if c.Seed != 0 {
		cfg.Game.Seed = c.Seed
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.History != "" {
		cfg.UI.HistoryFile = c.History
	}
}
