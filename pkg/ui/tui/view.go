package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// View renders the entire TUI
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Build the UI layout
	var sections []string

	// Logo
	sections = append(sections, m.renderLogo())

	// Main content area with two columns
	leftColumn := m.renderLeftColumn()
	rightColumn := m.renderRightColumn()

	mainContent := lipgloss.JoinHorizontal(
		lipgloss.Top,
		leftColumn,
		"  ", // spacing
		rightColumn,
	)
	sections = append(sections, mainContent)

	// Help
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("Press ? for help"))
	}

	// Join all sections vertically
	return baseStyle.Width(m.width).Height(m.height).Render(
		lipgloss.JoinVertical(lipgloss.Left, sections...),
	)
}

// renderLogo renders the logo banner
func (m *Model) renderLogo() string {
	logo := `
╔══════════════════════════════════════════════════════════════╗
║  ███████╗████████╗██████╗ ██████╗ ██╗   ██╗██╗     ██╗        ║
║  ██╔════╝╚══██╔══╝██╔══██╗██╔══██╗██║   ██║██║     ██║        ║
║  ███████╗   ██║   ██║  ██║██████╔╝██║   ██║██║     ██║        ║
║  ╚════██║   ██║   ██║  ██║██╔═══╝ ██║   ██║██║     ██║        ║
║  ███████║   ██║   ██████╔╝██║     ╚██████╔╝███████╗███████╗   ║
║  ╚══════╝   ╚═╝   ╚═════╝ ╚═╝      ╚═════╝ ╚══════╝╚══════╝   ║
║       COMMON STANDARDS PROJECT - BULK SYNC UTILITY v1.0       ║
╚══════════════════════════════════════════════════════════════╝`

	return logoStyle.Width(m.width).Render(logo)
}

// renderLeftColumn renders the left side of the UI
func (m *Model) renderLeftColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Stats panel
	sections = append(sections, m.renderStatsPanel(width))

	// Current jurisdiction panel
	sections = append(sections, m.renderJurisdictionPanel(width))

	// Recent results panel
	sections = append(sections, m.renderRecentPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderRightColumn renders the right side of the UI
func (m *Model) renderRightColumn() string {
	width := (m.width - 4) / 2

	var sections []string

	// Fallback audit panel
	sections = append(sections, m.renderFallbackPanel(width))

	// Logs panel
	sections = append(sections, m.renderLogsPanel(width))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatsPanel renders the statistics panel
func (m *Model) renderStatsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" SYNC STATS ")

	elapsed := time.Since(m.sessionStartTime)

	stats := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Session Time:"), statsValueStyle.Render(formatDuration(elapsed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Jurisdictions:"), statsValueStyle.Render(fmt.Sprintf("%d", m.jurisdictionsDone))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Sets Saved:"), statsValueStyle.Render(fmt.Sprintf("%d", m.written))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Skipped:"), statsValueStyle.Render(fmt.Sprintf("%d", m.skipped))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Failed:"), statsValueStyle.Render(fmt.Sprintf("%d", m.failed))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Fallback Writes:"), statsValueStyle.Render(fmt.Sprintf("%d", m.fallbacks))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%.1f sets/min", m.GetSyncRate()))),
	}

	if m.isPaused {
		stats = append(stats, warningStyle.Render("⏸  PAUSED"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, stats...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderJurisdictionPanel renders progress through the current jurisdiction
func (m *Model) renderJurisdictionPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" CURRENT JURISDICTION ")

	if m.jurisdictionID == "" {
		content := lipgloss.NewStyle().Foreground(dimWhite).Render("Waiting for jurisdiction listing...")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, content),
		)
	}

	header := fmt.Sprintf("%s %s", m.spinner.View(), currentSetStyle.Render(m.jurisdictionTitle))

	progress := 0.0
	if m.setsTotal > 0 {
		progress = float64(m.setsDone) / float64(m.setsTotal)
		if progress > 1.0 {
			progress = 1.0
		}
	}

	bar := m.setsBar
	bar.Width = width - 8
	barView := bar.ViewAs(progress)

	counter := lipgloss.NewStyle().Foreground(dimWhite).Render(
		fmt.Sprintf("%d/%d sets", m.setsDone, m.setsTotal))

	lines := []string{header, barView, counter}

	if m.currentSet != "" {
		name := m.currentSet
		maxLen := width - 12
		if maxLen > 0 && len(name) > maxLen {
			name = name[:maxLen-3] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			statsLabelStyle.Render("Fetching:"),
			statsValueStyle.Render(name)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderRecentPanel renders the recent set results
func (m *Model) renderRecentPanel(width int) string {
	title := titleStyle.Render(" RECENT SETS ")

	recent := m.GetRecentResults()

	if len(recent) == 0 {
		content := lipgloss.NewStyle().Foreground(dimWhite).Render("No sets processed yet")
		return panelStyle.Width(width).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, content),
		)
	}

	var items []string
	for _, r := range recent {
		label := r.Title
		if label == "" {
			label = r.ID
		}
		maxLen := width - 10
		if maxLen > 0 && len(label) > maxLen {
			label = label[:maxLen-3] + "..."
		}
		items = append(items, GetOutcomeStyle(r.Outcome).Render(OutcomeMarker(r.Outcome)+" "+label))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderFallbackPanel renders the fallback audit summary
func (m *Model) renderFallbackPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" FALLBACK AUDIT ")

	var lines []string
	if m.fallbacks == 0 {
		lines = append(lines, successStyle.Render("All writes on primary paths"))
	} else {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("↪ %d rerouted writes", m.fallbacks)))
		if m.lastFallbackPrimary != "" {
			maxLen := width - 12
			lines = append(lines, "",
				fmt.Sprintf("%s %s", statsLabelStyle.Render("Rejected:"), pathStyle.Render(truncatePath(m.lastFallbackPrimary, maxLen))),
				fmt.Sprintf("%s %s", statsLabelStyle.Render("Used:"), pathStyle.Render(truncatePath(m.lastFallbackTarget, maxLen))),
			)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return panelStyle.Width(width).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderLogsPanel renders the logs panel
func (m *Model) renderLogsPanel(width int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	title := titleStyle.Render(" SYNC LOG ")

	// Get recent logs
	start := len(m.logMessages) - 10
	if start < 0 {
		start = 0
	}

	var logs []string
	for i := start; i < len(m.logMessages); i++ {
		log := m.logMessages[i]
		timestamp := logTimestampStyle.Render(log.Time.Format("15:04:05"))
		level := lipgloss.NewStyle().Foreground(log.Color).Bold(true).Render(fmt.Sprintf("[%-7s]", log.Level))
		message := logMessageStyle.Render(log.Message)

		// Truncate message if too long
		maxMsgLen := width - 25
		if maxMsgLen > 3 && len(message) > maxMsgLen {
			message = message[:maxMsgLen-3] + "..."
		}

		logs = append(logs, fmt.Sprintf("%s %s %s", timestamp, level, message))
	}

	content := strings.Join(logs, "\n")
	if content == "" {
		content = lipgloss.NewStyle().Foreground(dimWhite).Render("No logs yet...")
	}

	// Calculate height for logs panel to fill remaining space
	logsHeight := m.height - 35 // Approximate calculation
	if logsHeight < 5 {
		logsHeight = 5
	}

	return panelStyle.Width(width).Height(logsHeight).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, content),
	)
}

// renderHelp renders the help panel
func (m *Model) renderHelp() string {
	help := `
  Navigation:
    q/Q      - Quit the application
    p/P      - Pause/Resume after the current set
    ?        - Toggle this help
    ctrl+l   - Clear the log panel

  Status Indicators:
    ` + successStyle.Render("Green") + `    - Saved on primary path
    ` + warningStyle.Render("Yellow") + `   - Saved via fallback path
    ` + errorStyle.Render("Red") + `      - Failed after retries

  Icons:
    ✓        - Set written
    ↪        - Fallback path used
    ⏭        - Skipped (already on disk)
    ✗        - Failed
    ⏸        - Paused
`

	return panelStyle.Width(m.width).Render(help)
}

// truncatePath shortens a path from the left so the filename stays visible
func truncatePath(path string, maxLen int) string {
	if maxLen <= 3 || len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d < 0 {
		return "00:00:00"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
