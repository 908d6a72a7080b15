package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Message types for the TUI

// JurisdictionStartMsg is sent when the driver moves to a new jurisdiction
type JurisdictionStartMsg struct {
	ID        string
	Title     string
	TotalSets int
}

// SetStartMsg is sent when a standard set fetch starts
type SetStartMsg struct {
	ID    string
	Title string
}

// SetCompleteMsg is sent when a standard set has been written
type SetCompleteMsg struct {
	ID           string
	UsedFallback bool
}

// SetSkipMsg is sent when a standard set is skipped on resume
type SetSkipMsg struct {
	ID string
}

// SetErrorMsg is sent when a standard set fails
type SetErrorMsg struct {
	ID    string
	Error error
}

// FallbackMsg is sent when a write lands on its fallback path
type FallbackMsg struct {
	Primary  string
	Fallback string
}

// LogMsg is sent to add a log message
type LogMsg struct {
	Level   string
	Message string
}

// TickMsg is sent periodically to update the UI
type TickMsg time.Time

// Update handles all messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		// Regular UI update tick
		return m, tea.Batch(
			tickCmd(),
			m.spinner.Tick,
		)

	case JurisdictionStartMsg:
		m.StartJurisdiction(msg.ID, msg.Title, msg.TotalSets)
		m.AddLogMessage("INFO", "Jurisdiction: "+msg.Title)
		return m, nil

	case SetStartMsg:
		m.StartSet(msg.ID, msg.Title)
		return m, nil

	case SetCompleteMsg:
		m.CompleteSet(msg.ID, msg.UsedFallback)
		if msg.UsedFallback {
			m.AddLogMessage("WARN", "Saved via fallback path: "+msg.ID)
		} else {
			m.AddLogMessage("SUCCESS", "Saved: "+msg.ID)
		}
		return m, nil

	case SetSkipMsg:
		m.SkipSet(msg.ID)
		return m, nil

	case SetErrorMsg:
		m.FailSet(msg.ID, msg.Error)
		m.AddLogMessage("ERROR", "Failed: "+msg.ID+" - "+msg.Error.Error())
		return m, nil

	case FallbackMsg:
		m.RecordFallback(msg.Primary, msg.Fallback)
		return m, nil

	case LogMsg:
		m.AddLogMessage(msg.Level, msg.Message)
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "p", "P":
		m.mu.Lock()
		m.isPaused = !m.isPaused
		paused := m.isPaused
		m.mu.Unlock()
		if paused {
			m.AddLogMessage("WARN", "Sync paused by user")
		} else {
			m.AddLogMessage("INFO", "Sync resumed by user")
		}
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil

	case "ctrl+l":
		// Clear logs
		m.mu.Lock()
		m.logMessages = []LogMessage{}
		m.mu.Unlock()
		return m, nil
	}

	return m, nil
}

// Commands

// tickCmd returns a command that sends a tick message
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Helper functions for external use

// SendJurisdictionStart creates a message announcing a new jurisdiction
func SendJurisdictionStart(id, title string, totalSets int) tea.Msg {
	return JurisdictionStartMsg{
		ID:        id,
		Title:     title,
		TotalSets: totalSets,
	}
}

// SendSetStart creates a message for a set fetch starting
func SendSetStart(id, title string) tea.Msg {
	return SetStartMsg{ID: id, Title: title}
}

// SendSetComplete creates a message for a written set
func SendSetComplete(id string, usedFallback bool) tea.Msg {
	return SetCompleteMsg{ID: id, UsedFallback: usedFallback}
}

// SendSetSkip creates a message for a skipped set
func SendSetSkip(id string) tea.Msg {
	return SetSkipMsg{ID: id}
}

// SendSetError creates a message for a failed set
func SendSetError(id string, err error) tea.Msg {
	return SetErrorMsg{ID: id, Error: err}
}

// SendFallback creates a message for a rerouted write
func SendFallback(primary, fallback string) tea.Msg {
	return FallbackMsg{Primary: primary, Fallback: fallback}
}

// SendLog creates a log message
func SendLog(level, message string) tea.Msg {
	return LogMsg{Level: level, Message: message}
}
