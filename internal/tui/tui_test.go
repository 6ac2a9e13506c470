package tui

import (
	"context"
	"io"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/oichokabu/internal/deck"
	"github.com/lox/oichokabu/internal/game"
	"github.com/lox/oichokabu/internal/statistics"
)

// Deals are listed P, P, D, D followed by any hits and dealer draws.
const (
	winningDeal  = "4s 5h 2d 3c"    // 9 against 5
	losingDeal   = "2s 3h 4d 4c"    // 5 against 8
	hittingDeal  = "1s 2h 4d 4c 3d" // 3, hits to 6, against 8
	gameOverWait = 2 * time.Second
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestModel(t *testing.T, chips int, clock quartz.Clock, deals ...string) *Model {
	t.Helper()
	next := 0
	source := func() *deck.Deck {
		require.Less(t, next, len(deals), "ran out of stacked deals")
		cards := deck.MustParseCards(deals[next])
		next++
		return deck.Stacked(cards...)
	}

	engine := game.NewEngine(
		game.WithChips(chips),
		game.WithDeckSource(source),
		game.WithLogger(quietLogger()),
		game.WithClock(clock),
	)
	return New(engine, Options{
		Logger:        quietLogger(),
		Clock:         clock,
		GameOverDelay: gameOverWait,
		DefaultBet:    100,
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m *Model, s string) tea.Cmd {
	_, cmd := m.Update(key(s))
	return cmd
}

func logText(m *Model) string {
	return strings.Join(m.Log(), "\n")
}

func TestStartRoundWithTypedBet(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)
	m.betInput.SetValue("250")

	assert.Nil(t, press(m, "n"))

	snap := m.Snapshot()
	assert.Equal(t, game.PlayerTurn, snap.Phase)
	assert.Equal(t, 250, snap.Bet)
	assert.Contains(t, logText(m), "*** ROUND 1 *** bet $250 (stack $1000)")
	assert.Contains(t, logText(m), "Dealer: draws a face-down card")
	assert.Empty(t, m.status)
}

func TestEnterStartsRound(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)

	press(m, "enter")
	assert.Equal(t, game.PlayerTurn, m.Snapshot().Phase)
	assert.Equal(t, 100, m.Snapshot().Bet)
}

func TestNonNumericBetIsRejected(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t))

	for _, text := range []string{"abc", "", "12.5"} {
		m.betInput.SetValue(text)
		press(m, "n")
		assert.Equal(t, game.NotStarted, m.Snapshot().Phase, "bet %q", text)
		assert.Contains(t, m.status, "not a bet")
	}
	assert.Equal(t, 1000, m.Snapshot().Chips)
}

func TestBetIsClamped(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"above stack", "5000", 500},
		{"below minimum", "3", game.MinBet},
		{"negative", "-40", game.MinBet},
		{"within range", "120", 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newTestModel(t, 500, quartz.NewMock(t), winningDeal)
			m.betInput.SetValue(tt.input)

			press(m, "n")
			assert.Equal(t, tt.want, m.Snapshot().Bet)
			assert.Equal(t, strconv.Itoa(tt.want), m.betInput.Value())
			if tt.input != "120" {
				assert.Contains(t, m.status, "Bet adjusted")
			}
		})
	}
}

func TestTypingDigitsEditsBet(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)
	m.betInput.SetValue("")

	press(m, "3")
	press(m, "0")
	assert.Equal(t, "30", m.betInput.Value())

	press(m, "n")
	assert.Equal(t, 30, m.Snapshot().Bet)
}

func TestActionKeysOutsideTurnAreIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)

	assert.Nil(t, press(m, "h"))
	assert.Nil(t, press(m, "s"))
	assert.Equal(t, game.NotStarted, m.Snapshot().Phase)
	assert.Equal(t, 1000, m.Snapshot().Chips)
}

func TestHitAndStand(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), hittingDeal)

	press(m, "n")
	press(m, "h")
	snap := m.Snapshot()
	require.Len(t, snap.Player, 3)
	assert.Equal(t, game.Score(6), snap.PlayerScore)

	// a fourth card is never dealt
	press(m, "h")
	assert.Len(t, m.Snapshot().Player, 3)

	assert.Nil(t, press(m, "s"))
	snap = m.Snapshot()
	assert.Equal(t, game.Settled, snap.Phase)
	assert.Equal(t, game.Lose, snap.Result)
	assert.Equal(t, 900, snap.Chips)
	assert.Contains(t, logText(m), "You lose $100 (stack $900)")
}

func TestBetIsLockedDuringRound(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), losingDeal)
	m.betInput.SetValue("100")

	press(m, "n")
	require.True(t, m.Snapshot().InRound())
	assert.False(t, m.betInput.Focused())

	press(m, "5")
	assert.Equal(t, "100", m.betInput.Value())

	// tab back to the bet pane keeps the field locked until settlement
	press(m, "tab")
	press(m, "tab")
	assert.Equal(t, focusBet, m.focusedPane)
	assert.False(t, m.betInput.Focused())

	press(m, "s")
	require.Equal(t, game.Settled, m.Snapshot().Phase)
	assert.True(t, m.betInput.Focused())

	press(m, "5")
	assert.Equal(t, "1005", m.betInput.Value())
}

func TestStartRoundDuringRoundIsIgnored(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)

	press(m, "n")
	before := m.Snapshot()
	press(m, "n")
	assert.Equal(t, before, m.Snapshot())
	assert.Contains(t, m.status, "Finish the current round")
}

func TestAvailableActionsFollowEngine(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), hittingDeal)

	actions := m.renderAvailableActions()
	assert.Contains(t, actions, "[n] deal")
	assert.NotContains(t, actions, "[h] hit")

	press(m, "n")
	actions = m.renderAvailableActions()
	assert.Contains(t, actions, "[h] hit")
	assert.Contains(t, actions, "[s] stand")
	assert.NotContains(t, actions, "[n] deal")

	press(m, "h")
	actions = m.renderAvailableActions()
	assert.NotContains(t, actions, "[h] hit")
	assert.Contains(t, actions, "[s] stand")
}

func TestDealerHoleCardIsHidden(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)

	press(m, "n")
	pane := m.renderActionPane()
	assert.Contains(t, pane, "??")
	assert.NotContains(t, pane, "3♣")

	press(m, "s")
	pane = m.renderActionPane()
	assert.NotContains(t, pane, "??")
	assert.Contains(t, pane, "3♣")
	assert.Contains(t, pane, "You win $100")
}

func TestGameOverNoticeIsDelayed(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mClock := quartz.NewMock(t)
	m := newTestModel(t, game.MinBet, mClock, losingDeal)

	press(m, "n")
	cmd := press(m, "s")
	require.NotNil(t, cmd)
	assert.Equal(t, game.GameOver, m.Snapshot().Phase)
	assert.NotContains(t, logText(m), "GAME OVER")

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case <-done:
		t.Fatal("notice fired before the delay")
	case <-time.After(10 * time.Millisecond):
	}

	mClock.Advance(gameOverWait).MustWait(ctx)

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-ctx.Done():
		t.Fatal("notice never fired")
	}
	m.Update(msg)

	assert.Contains(t, logText(m), "*** GAME OVER *** $0 left after 1 rounds")
	assert.Contains(t, m.status, "out of chips")
	assert.Contains(t, m.renderAvailableActions(), "Game over")

	// further deal attempts don't arm a second timer
	assert.Nil(t, press(m, "n"))
}

func TestGameOverWithoutDelay(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, game.MinBet, quartz.NewMock(t), losingDeal)
	m.gameOverDelay = 0

	press(m, "n")
	cmd := press(m, "s")
	require.NotNil(t, cmd)

	m.Update(cmd())
	assert.True(t, m.gameOverShown)
	assert.Contains(t, logText(m), "GAME OVER")
}

func TestQuit(t *testing.T) {
	t.Parallel()
	for _, k := range []string{"q", "ctrl+c"} {
		m := newTestModel(t, 1000, quartz.NewMock(t))
		cmd := press(m, k)
		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	}
}

func TestTabTogglesFocus(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t))
	require.Equal(t, focusBet, m.focusedPane)

	press(m, "tab")
	assert.Equal(t, focusLog, m.focusedPane)
	assert.False(t, m.betInput.Focused())

	// digits don't reach the bet field while the log is focused
	before := m.betInput.Value()
	press(m, "7")
	assert.Equal(t, before, m.betInput.Value())

	press(m, "tab")
	assert.Equal(t, focusBet, m.focusedPane)
	assert.True(t, m.betInput.Focused())
}

func TestView(t *testing.T) {
	t.Parallel()
	m := newTestModel(t, 1000, quartz.NewMock(t), winningDeal)
	stats := statistics.New()
	m.engine.Bus().Subscribe(stats)
	m.stats = stats

	assert.Equal(t, "Loading...", m.View())

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	view := m.View()
	assert.Contains(t, view, "OICHO-KABU")
	assert.Contains(t, view, "Chips: $1000")
	assert.Contains(t, view, "Place your bet.")

	press(m, "n")
	press(m, "s")
	view = m.View()
	assert.Contains(t, view, "Chips: $1100")
	assert.Contains(t, view, "W/L/T: 1/0/0")
}

func TestThemeStyles(t *testing.T) {
	t.Parallel()
	for _, theme := range []string{"default", "dark", "light", "unknown"} {
		s := ThemeStyles(theme)
		assert.Contains(t, s.Header.Render("x"), "x", theme)
	}
}
