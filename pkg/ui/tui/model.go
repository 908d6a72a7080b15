package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SetOutcome classifies how one standard set finished
type SetOutcome int

const (
	SetWritten SetOutcome = iota
	SetFallback
	SetSkipped
	SetFailed
)

// SetResult is one finished set shown in the recent-results panel
type SetResult struct {
	ID      string
	Title   string
	Outcome SetOutcome
	Err     error
}

// Model represents the TUI model
type Model struct {
	// UI components
	spinner spinner.Model
	setsBar progress.Model

	// Current jurisdiction
	jurisdictionID    string
	jurisdictionTitle string
	setsTotal         int
	setsDone          int
	currentSet        string

	// Stats
	jurisdictionsDone int
	written           int
	skipped           int
	failed            int
	fallbacks         int
	sessionStartTime  time.Time

	// Fallback audit
	lastFallbackPrimary string
	lastFallbackTarget  string

	// Recent results
	recent    []SetResult
	maxRecent int

	// UI state
	width          int
	height         int
	showHelp       bool
	isPaused       bool
	logMessages    []LogMessage
	maxLogMessages int

	// Mutex for thread safety
	mu sync.RWMutex
}

// LogMessage represents a log entry
type LogMessage struct {
	Time    time.Time
	Level   string
	Message string
	Color   lipgloss.Color
}

// NewModel creates a new TUI model
func NewModel() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(neonCyan)

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 40

	return Model{
		spinner:          s,
		setsBar:          bar,
		sessionStartTime: time.Now(),
		recent:           []SetResult{},
		maxRecent:        8,
		logMessages:      []LogMessage{},
		maxLogMessages:   50,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// StartJurisdiction switches the dashboard to a new jurisdiction
func (m *Model) StartJurisdiction(id, title string, totalSets int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.jurisdictionID != "" {
		m.jurisdictionsDone++
	}
	m.jurisdictionID = id
	m.jurisdictionTitle = title
	m.setsTotal = totalSets
	m.setsDone = 0
	m.currentSet = ""
}

// StartSet marks a set as in flight
func (m *Model) StartSet(id, title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentSet = title
	if m.currentSet == "" {
		m.currentSet = id
	}
}

// CompleteSet records a written set
func (m *Model) CompleteSet(id string, usedFallback bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setsDone++
	m.written++
	outcome := SetWritten
	if usedFallback {
		m.fallbacks++
		outcome = SetFallback
	}
	m.pushResult(SetResult{ID: id, Title: m.currentSet, Outcome: outcome})
	m.currentSet = ""
}

// SkipSet records a set skipped because its output already exists
func (m *Model) SkipSet(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setsDone++
	m.skipped++
	m.pushResult(SetResult{ID: id, Title: m.currentSet, Outcome: SetSkipped})
	m.currentSet = ""
}

// FailSet records a set that could not be fetched or written
func (m *Model) FailSet(id string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setsDone++
	m.failed++
	m.pushResult(SetResult{ID: id, Title: m.currentSet, Outcome: SetFailed, Err: err})
	m.currentSet = ""
}

// RecordFallback updates the audit panel with the latest rerouted write
func (m *Model) RecordFallback(primary, fallback string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFallbackPrimary = primary
	m.lastFallbackTarget = fallback
}

// pushResult appends to the recent-results ring. Caller holds the lock.
func (m *Model) pushResult(r SetResult) {
	m.recent = append(m.recent, r)
	if len(m.recent) > m.maxRecent {
		m.recent = m.recent[len(m.recent)-m.maxRecent:]
	}
}

// AddLogMessage adds a log message
func (m *Model) AddLogMessage(level, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	color := dimWhite
	switch level {
	case "ERROR":
		color = lipgloss.Color("#FF0000")
	case "WARN":
		color = neonOrange
	case "SUCCESS":
		color = neonGreen
	case "INFO":
		color = neonCyan
	}

	m.logMessages = append(m.logMessages, LogMessage{
		Time:    time.Now(),
		Level:   level,
		Message: message,
		Color:   color,
	})

	// Keep only the last N messages
	if len(m.logMessages) > m.maxLogMessages {
		m.logMessages = m.logMessages[len(m.logMessages)-m.maxLogMessages:]
	}
}

// GetRecentResults returns the recent results, newest last
func (m *Model) GetRecentResults() []SetResult {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]SetResult, len(m.recent))
	copy(out, m.recent)
	return out
}

// GetSyncRate returns the average processing rate in sets per minute
func (m *Model) GetSyncRate() float64 {
	elapsed := time.Since(m.sessionStartTime).Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(m.written+m.skipped) / elapsed
}
