// Package tui is the Bubble Tea front end for a single-player Oicho-Kabu
// table. It owns no game rules: every key maps to an engine call and the
// screen is rebuilt from the returned snapshot.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/oichokabu/internal/game"
	"github.com/lox/oichokabu/internal/statistics"
)

const (
	focusLog = iota
	focusBet
)

// Options configures a Model
type Options struct {
	Logger        *log.Logger
	Clock         quartz.Clock
	GameOverDelay time.Duration // Wait before showing the out-of-chips notice
	DefaultBet    int
	Stats         *statistics.Statistics // Optional, shown in the sidebar
	Theme         string
	Color         bool // ANSI styling in log lines
}

// gameOverMsg is delivered once the game-over delay has elapsed
type gameOverMsg struct{}

// Model is the Bubble Tea model for the table
type Model struct {
	engine    *game.Engine
	stats     *statistics.Statistics
	formatter *game.EventFormatter
	styles    Styles
	logger    *log.Logger
	clock     quartz.Clock

	// UI components
	logViewport viewport.Model
	betInput    textinput.Model

	// State
	snap          game.Snapshot
	gameLog       []string
	status        string
	focusedPane   int
	quitting      bool
	gameOverDelay time.Duration
	gameOverEvent *game.GameOverEvent // Held back until the delay fires
	gameOverTimer bool
	gameOverShown bool

	// Dimensions
	width       int
	height      int
	initialized bool
}

// New creates a model driving engine and subscribes it to the engine's
// event bus.
func New(engine *game.Engine, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.DefaultBet <= 0 {
		opts.DefaultBet = game.DefaultBet
	}

	styles := ThemeStyles(opts.Theme)

	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "bet"
	ti.CharLimit = 9
	ti.Width = 12
	ti.Prompt = "Bet $"
	ti.PromptStyle = lipgloss.NewStyle().Foreground(styles.FocusBorder).Bold(true)
	ti.SetValue(strconv.Itoa(opts.DefaultBet))
	ti.Focus()

	m := &Model{
		engine:        engine,
		stats:         opts.Stats,
		formatter:     game.NewEventFormatter(game.FormattingOptions{Color: opts.Color}),
		styles:        styles,
		logger:        opts.Logger.WithPrefix("tui"),
		clock:         opts.Clock,
		logViewport:   vp,
		betInput:      ti,
		snap:          engine.Snapshot(),
		focusedPane:   focusBet,
		gameOverDelay: opts.GameOverDelay,
	}
	engine.Bus().Subscribe(m)
	return m
}

// OnEvent implements game.EventSubscriber. The engine publishes from inside
// Update, so this runs on the Bubble Tea goroutine.
func (m *Model) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.GameOverEvent); ok {
		m.gameOverEvent = &e
		return
	}
	m.addLogEntry(m.formatter.Format(event))
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	m.addLogEntry("Welcome to Oicho-Kabu. Get closer to 9 than the dealer.")
	return textinput.Blink
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case gameOverMsg:
		m.showGameOver()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		// Action keys win over the bet field; it only accepts digits.
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "n", "enter":
			cmd := m.startRound()
			m.syncBetFocus()
			return m, cmd
		case "h":
			cmd := m.hit()
			m.syncBetFocus()
			return m, cmd
		case "s":
			cmd := m.stand()
			m.syncBetFocus()
			return m, cmd
		case "tab":
			if m.focusedPane == focusLog {
				m.focusedPane = focusBet
			} else {
				m.focusedPane = focusLog
			}
			m.syncBetFocus()
			return m, nil
		}

		if m.focusedPane == focusLog {
			switch msg.String() {
			case "up", "k":
				m.logViewport.ScrollUp(1)
			case "down", "j":
				m.logViewport.ScrollDown(1)
			case "pgup", "b":
				m.logViewport.HalfPageUp()
			case "pgdown", "f":
				m.logViewport.HalfPageDown()
			case "home", "g":
				m.logViewport.GotoTop()
			case "end", "G":
				m.logViewport.GotoBottom()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.betInput.Focused() {
		m.betInput, cmd = m.betInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// syncBetFocus locks the bet field while a round is being played
func (m *Model) syncBetFocus() {
	if m.focusedPane == focusBet && !m.snap.InRound() {
		m.betInput.Focus()
		return
	}
	m.betInput.Blur()
}

// startRound deals a round with the bet typed into the bet field
func (m *Model) startRound() tea.Cmd {
	if m.snap.Phase == game.GameOver {
		m.status = "Out of chips. Press q to quit."
		return m.scheduleGameOver()
	}
	if !m.engine.CanStartRound() {
		m.status = "Finish the current round first."
		return nil
	}

	text := strings.TrimSpace(m.betInput.Value())
	requested, err := strconv.Atoi(text)
	if err != nil {
		m.status = fmt.Sprintf("%q is not a bet. Enter a whole number of chips.", text)
		return nil
	}

	bet := game.ClampBet(requested, m.engine.Chips())
	if bet != requested {
		m.betInput.SetValue(strconv.Itoa(bet))
	}

	snap, err := m.engine.StartRound(bet)
	m.snap = snap
	if errors.Is(err, game.ErrInsufficientFunds) {
		m.snap = m.engine.Snapshot()
		return m.scheduleGameOver()
	}
	if err != nil {
		m.logger.Error("Failed to start round", "error", err)
		m.status = err.Error()
		return nil
	}

	m.status = ""
	if bet != requested {
		m.status = fmt.Sprintf("Bet adjusted to $%d.", bet)
	}
	return nil
}

func (m *Model) hit() tea.Cmd {
	snap, err := m.engine.Hit()
	m.snap = snap
	if errors.Is(err, game.ErrInvalidState) {
		m.logger.Debug("Ignoring hit", "phase", snap.Phase)
		return nil
	}
	m.status = ""
	return nil
}

func (m *Model) stand() tea.Cmd {
	snap, err := m.engine.Stand()
	m.snap = snap
	if errors.Is(err, game.ErrInvalidState) {
		m.logger.Debug("Ignoring stand", "phase", snap.Phase)
		return nil
	}
	m.status = ""
	if snap.Phase == game.GameOver {
		return m.scheduleGameOver()
	}
	return nil
}

// scheduleGameOver arms the game-over notice once. The returned command
// blocks until the clock fires.
func (m *Model) scheduleGameOver() tea.Cmd {
	if m.gameOverTimer {
		return nil
	}
	m.gameOverTimer = true

	if m.gameOverDelay <= 0 {
		return func() tea.Msg { return gameOverMsg{} }
	}

	fired := make(chan struct{})
	m.clock.AfterFunc(m.gameOverDelay, func() { close(fired) })
	return func() tea.Msg {
		<-fired
		return gameOverMsg{}
	}
}

func (m *Model) showGameOver() {
	if m.gameOverShown {
		return
	}
	m.gameOverShown = true
	if m.gameOverEvent != nil {
		m.addLogEntry(m.formatter.Format(*m.gameOverEvent))
	}
	m.status = "You are out of chips. Press q to quit."
	m.logger.Info("Game over shown", "chips", m.snap.Chips, "rounds", m.snap.Round)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(focusBet)).
		Width(max(1, m.width-2)).
		Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(24, lipgloss.Width(sidebarContent))
	paneHeight := max(1, m.height-actionHeight-4)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Border).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	logWidth := max(1, m.width-sidebarWidth-4)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(focusLog)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return m.styles.FocusBorder
	}
	return m.styles.Border
}

// renderSidebarPane shows the stack and, when available, session totals
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(m.styles.Header.Render("OICHO-KABU"))
	content.WriteString("\n\n")
	content.WriteString(m.styles.Warning.Render(fmt.Sprintf("Chips: $%d", m.snap.Chips)))
	content.WriteString("\n")
	if m.snap.Bet > 0 {
		content.WriteString(fmt.Sprintf("Bet:   $%d\n", m.snap.Bet))
	}
	content.WriteString(fmt.Sprintf("Round: %d\n", m.snap.Round))

	if m.stats != nil && m.stats.Rounds > 0 {
		content.WriteString("\n")
		content.WriteString(m.styles.Info.Render("Session"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("W/L/T: %d/%d/%d\n", m.stats.Wins, m.stats.Losses, m.stats.Ties))
		content.WriteString(fmt.Sprintf("Net:   %+d\n", m.stats.NetChips))
		content.WriteString(fmt.Sprintf("Peak:  $%d\n", m.stats.PeakChips))
	}

	return content.String()
}

// renderActionPane shows both hands, the available keys and the bet field
func (m *Model) renderActionPane() string {
	var content strings.Builder

	if len(m.snap.Player) > 0 {
		content.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("Dealer: %s  %s",
			m.formatCards(m.snap.Dealer), m.snap.DealerLabel())))
		content.WriteString("\n")
		content.WriteString(m.styles.HandInfo.Render(fmt.Sprintf("You:    %s  %s",
			m.formatCards(m.snap.Player), m.snap.PlayerLabel())))
		content.WriteString("\n")
	} else {
		content.WriteString(m.styles.HandInfo.Render("Place your bet."))
		content.WriteString("\n")
	}

	if m.snap.Result != game.NoResult && !m.snap.InRound() {
		content.WriteString(m.renderResult())
		content.WriteString("\n")
	}

	content.WriteString(m.renderAvailableActions())
	content.WriteString("\n")
	content.WriteString(m.betInput.View())
	content.WriteString("\n")

	if m.status != "" {
		content.WriteString(m.styles.Warning.Render(m.status))
		content.WriteString("\n")
	}

	if m.focusedPane == focusLog {
		content.WriteString(m.styles.Info.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to bet"))
	} else {
		content.WriteString(m.styles.Info.Render("Tab to scroll log • q to quit"))
	}

	return content.String()
}

func (m *Model) renderResult() string {
	switch m.snap.Result {
	case game.Win:
		return m.styles.Success.Render(fmt.Sprintf("You win $%d", m.snap.Bet))
	case game.Lose:
		return m.styles.Error.Render(fmt.Sprintf("You lose $%d", m.snap.Bet))
	default:
		return m.styles.Warning.Render("Push")
	}
}

// renderAvailableActions lists only the keys the engine will accept
func (m *Model) renderAvailableActions() string {
	var actions []string
	if m.engine.CanHit() {
		actions = append(actions, m.styles.Warning.Render("[h] hit"))
	}
	if m.engine.CanStand() {
		actions = append(actions, m.styles.Success.Render("[s] stand"))
	}
	if m.engine.CanStartRound() {
		actions = append(actions, m.styles.Success.Render("[n] deal"))
	}
	if len(actions) == 0 {
		return m.styles.Error.Render("Game over")
	}
	return m.styles.Actions.Render("Actions: " + strings.Join(actions, " "))
}

// formatCards formats cards with colors, concealed cards as ??
func (m *Model) formatCards(cards []game.CardView) string {
	formatted := make([]string, 0, len(cards))
	for _, view := range cards {
		switch {
		case view.Concealed:
			formatted = append(formatted, m.styles.HiddenCard.Render("??"))
		case view.Card.IsRed():
			formatted = append(formatted, m.styles.RedCard.Render(view.Card.String()))
		default:
			formatted = append(formatted, m.styles.BlackCard.Render(view.Card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// addLogEntry appends to the log and scrolls to the bottom
func (m *Model) addLogEntry(entry string) {
	for _, line := range strings.Split(strings.TrimLeft(entry, "\n"), "\n") {
		m.gameLog = append(m.gameLog, line)
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Snapshot returns the last snapshot the model rendered from
func (m *Model) Snapshot() game.Snapshot {
	return m.snap
}

// Log returns a copy of the log lines
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}
