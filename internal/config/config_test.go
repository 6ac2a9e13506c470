package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Equal(t, 100, cfg.Game.DefaultBet)
	assert.Equal(t, int64(0), cfg.Game.Seed)
	assert.Equal(t, 2*time.Second, cfg.GameOverDelay())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultFilename)
	src := `
game {
  starting_chips = 500
  default_bet    = 50
  seed           = 42
}

ui {
  game_over_delay_ms = 250
  log_level          = "debug"
  log_file           = "/tmp/kabu.log"
  theme              = "dark"
  history_file       = "rounds.json"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 500, cfg.Game.StartingChips)
	assert.Equal(t, 50, cfg.Game.DefaultBet)
	assert.Equal(t, int64(42), cfg.Game.Seed)
	assert.Equal(t, 250*time.Millisecond, cfg.GameOverDelay())
	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, "/tmp/kabu.log", cfg.UI.LogFile)
	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, "rounds.json", cfg.UI.HistoryFile)
}

func TestParseAppliesDefaults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"empty file", ""},
		{"empty blocks", "game {}\nui {}\n"},
		{"only game block", "game {\n  seed = 7\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())

			defaults := Default()
			assert.Equal(t, defaults.Game.StartingChips, cfg.Game.StartingChips)
			assert.Equal(t, defaults.Game.DefaultBet, cfg.Game.DefaultBet)
			assert.Equal(t, defaults.UI, cfg.UI)
		})
	}
}

func TestParseGameOverDelay(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want time.Duration
	}{
		{"omitted uses default", "ui {}\n", 2 * time.Second},
		{"zero shows immediately", "ui {\n  game_over_delay_ms = 0\n}\n", 0},
		{"explicit value", "ui {\n  game_over_delay_ms = 500\n}\n", 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.want, cfg.GameOverDelay())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", "game {"},
		{"unknown attribute", "game {\n  rebuy = true\n}\n"},
		{"wrong type", "game {\n  starting_chips = \"lots\"\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "test.hcl")
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"negative chips", func(c *Config) { c.Game.StartingChips = -5 }, "starting chips"},
		{"bet below minimum", func(c *Config) { c.Game.DefaultBet = 5 }, "default bet"},
		{"negative delay", func(c *Config) { c.UI.GameOverDelayMs = intPtr(-1) }, "delay"},
		{"unknown log level", func(c *Config) { c.UI.LogLevel = "chatty" }, "log level"},
		{"unknown theme", func(c *Config) { c.UI.Theme = "neon" }, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
