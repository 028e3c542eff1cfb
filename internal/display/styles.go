package display

import "github.com/charmbracelet/lipgloss"

// ── Styles ───────────────────────────────────────────────────────

var (
	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#27272a")).
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Dimmed text for hints and blank quantities.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	checkedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	inputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a")).
			Italic(true)

	sectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#52525b")).
			Padding(0, 1)

	activeSectionStyle = sectionStyle.
				BorderForeground(lipgloss.Color("#bbf7d0"))
)
