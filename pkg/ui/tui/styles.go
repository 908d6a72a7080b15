package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Cyberpunk color palette
	neonCyan    = lipgloss.Color("#00FFFF")
	neonMagenta = lipgloss.Color("#FF00FF")
	neonPink    = lipgloss.Color("#FF10F0")
	neonGreen   = lipgloss.Color("#39FF14")
	neonYellow  = lipgloss.Color("#FFFF00")
	neonOrange  = lipgloss.Color("#FF6700")
	darkBg      = lipgloss.Color("#0A0E27")
	darkBg2     = lipgloss.Color("#1A1E37")
	dimWhite    = lipgloss.Color("#B0B0B0")
	brightWhite = lipgloss.Color("#FFFFFF")

	// Base styles
	baseStyle = lipgloss.NewStyle().
			Background(darkBg).
			Foreground(dimWhite)

	// Logo style
	logoStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true).
			Padding(1, 0).
			Align(lipgloss.Center)

	// Panel styles
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(neonMagenta).
			Background(darkBg2).
			Padding(1, 2)

	// Stats styles
	statsLabelStyle = lipgloss.NewStyle().
			Foreground(neonCyan).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(neonYellow)

	// Status styles
	successStyle = lipgloss.NewStyle().
			Foreground(neonGreen).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(neonOrange).
			Bold(true)

	// Result list styles
	resultWrittenStyle = lipgloss.NewStyle().
				Foreground(neonGreen).
				PaddingLeft(2)

	resultFallbackStyle = lipgloss.NewStyle().
				Foreground(neonYellow).
				PaddingLeft(2)

	resultSkippedStyle = lipgloss.NewStyle().
				Foreground(dimWhite).
				Faint(true).
				PaddingLeft(2)

	resultFailedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF0000")).
				PaddingLeft(2)

	// Path styles for the fallback audit panel
	pathStyle = lipgloss.NewStyle().
			Foreground(neonPink)

	// Log styles
	logTimestampStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	logMessageStyle = lipgloss.NewStyle().
			Foreground(dimWhite)

	// Help style
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)

	// Title styles for panels
	titleStyle = lipgloss.NewStyle().
			Background(neonMagenta).
			Foreground(darkBg).
			Bold(true).
			Padding(0, 1)

	// Current set style
	currentSetStyle = lipgloss.NewStyle().
			Foreground(brightWhite).
			Bold(true)
)

// GetOutcomeStyle returns the list style matching a set outcome
func GetOutcomeStyle(outcome SetOutcome) lipgloss.Style {
	switch outcome {
	case SetFallback:
		return resultFallbackStyle
	case SetSkipped:
		return resultSkippedStyle
	case SetFailed:
		return resultFailedStyle
	default:
		return resultWrittenStyle
	}
}

// OutcomeMarker returns the icon shown next to a finished set
func OutcomeMarker(outcome SetOutcome) string {
	switch outcome {
	case SetFallback:
		return "↪"
	case SetSkipped:
		return "⏭"
	case SetFailed:
		return "✗"
	default:
		return "✓"
	}
}
