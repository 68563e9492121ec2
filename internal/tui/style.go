package tui

import "github.com/charmbracelet/lipgloss"

var (
	PrimaryColor   = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	SecondaryColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	MutedColor     = lipgloss.AdaptiveColor{Light: "241", Dark: "241"}
	TextColor      = lipgloss.Color("252")
	WarningColor   = lipgloss.Color("214")
	CriticalColor  = lipgloss.AdaptiveColor{Light: "196", Dark: "196"}
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 0, 1, 0)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				Padding(0, 1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(MutedColor).
				PaddingLeft(1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#343433", Dark: "#C1C6B2"}).
			Background(lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#353533"}).
			Padding(0, 1)

	SeverityStyle = map[string]lipgloss.Style{
		"INFO":     lipgloss.NewStyle().Foreground(MutedColor),
		"WARNING":  lipgloss.NewStyle().Foreground(WarningColor).Bold(true),
		"CRITICAL": lipgloss.NewStyle().Foreground(CriticalColor).Bold(true),
	}
)

// renderStatusBar lays out a split-width status bar: left-aligned
// content, right-aligned content, padded to the pane width.
func renderStatusBar(width int, left, right string) string {
	leftWidth := len(left) + 2
	rightWidth := width - leftWidth
	if rightWidth < 0 {
		rightWidth = 0
	}
	l := StatusBarStyle.Width(leftWidth).Render(left)
	r := StatusBarStyle.Width(rightWidth).Align(lipgloss.Right).Render(right)
	return l + r
}
