package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles for one colour theme
type Styles struct {
	Header      lipgloss.Style
	HandInfo    lipgloss.Style
	Actions     lipgloss.Style
	RedCard     lipgloss.Style
	BlackCard   lipgloss.Style
	HiddenCard  lipgloss.Style
	Success     lipgloss.Style
	Error       lipgloss.Style
	Warning     lipgloss.Style
	Info        lipgloss.Style
	FocusBorder lipgloss.Color
	Border      lipgloss.Color
}

// ThemeStyles returns the styles for a named theme. Unknown names get the
// default theme.
func ThemeStyles(theme string) Styles {
	s := Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		HandInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Actions: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		RedCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		BlackCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#FAFAFA")).
			Bold(true),
		HiddenCard: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		FocusBorder: lipgloss.Color("#04B575"),
		Border:      lipgloss.Color("#626262"),
	}

	switch theme {
	case "dark":
		s.BlackCard = s.BlackCard.Foreground(lipgloss.Color("#FAFAFA")).UnsetBackground()
		s.Border = lipgloss.Color("#3C3C3C")
	case "light":
		s.HandInfo = s.HandInfo.Foreground(lipgloss.Color("#2E7D32"))
		s.Success = s.Success.Foreground(lipgloss.Color("#2E7D32"))
		s.Warning = s.Warning.Foreground(lipgloss.Color("#B8860B"))
		s.Actions = s.Actions.Foreground(lipgloss.Color("#B8860B"))
		s.BlackCard = s.BlackCard.UnsetBackground()
		s.Info = s.Info.Foreground(lipgloss.Color("#8A8A8A"))
	}
	return s
}
