// Package config loads the HCL configuration for the oichokabu command.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/oichokabu/internal/game"
)

// DefaultFilename is the configuration file looked up when none is given
const DefaultFilename = "oichokabu.hcl"

// Config represents the complete configuration
type Config struct {
	Game *GameSettings `hcl:"game,block"`
	UI   *UISettings   `hcl:"ui,block"`
}

// GameSettings contains table stakes and shuffling settings
type GameSettings struct {
	StartingChips int   `hcl:"starting_chips,optional"`
	DefaultBet    int   `hcl:"default_bet,optional"`
	Seed          int64 `hcl:"seed,optional"` // 0 means a random seed
}

// UISettings contains user interface settings
type UISettings struct {
	GameOverDelayMs *int   `hcl:"game_over_delay_ms,optional"` // 0 shows game over immediately
	LogLevel        string `hcl:"log_level,optional"`
	LogFile         string `hcl:"log_file,optional"`
	Theme           string `hcl:"theme,optional"`
	HistoryFile     string `hcl:"history_file,optional"` // Empty disables the round history
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			StartingChips: game.DefaultStartingChips,
			DefaultBet:    game.DefaultBet,
		},
		UI: &UISettings{
			GameOverDelayMs: intPtr(2000),
			LogLevel:        "info",
			LogFile:         "oichokabu.log",
			Theme:           "default",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes configuration from HCL source and applies defaults for
// anything left unset.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game == nil {
		c.Game = defaults.Game
	}
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = defaults.Game.StartingChips
	}
	if c.Game.DefaultBet == 0 {
		c.Game.DefaultBet = defaults.Game.DefaultBet
	}

	if c.UI == nil {
		c.UI = defaults.UI
	}
	if c.UI.GameOverDelayMs == nil {
		c.UI.GameOverDelayMs = defaults.UI.GameOverDelayMs
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}

	if c.Game.DefaultBet < game.MinBet {
		return fmt.Errorf("default bet must be at least %d", game.MinBet)
	}

	if c.UI.GameOverDelayMs != nil && *c.UI.GameOverDelayMs < 0 {
		return fmt.Errorf("game over delay cannot be negative")
	}

	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}

	validThemes := map[string]bool{
		"default": true,
		"dark":    true,
		"light":   true,
	}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid theme: %s", c.UI.Theme)
	}

	return nil
}

// GameOverDelay returns how long the game-over notice waits after the last
// settlement
func (c *Config) GameOverDelay() time.Duration {
	if c.UI.GameOverDelayMs == nil {
		return 0
	}
	return time.Duration(*c.UI.GameOverDelayMs) * time.Millisecond
}

// LogLevel returns the parsed log level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func intPtr(v int) *int {
	return &v
}
