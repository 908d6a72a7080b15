package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI represents the terminal user interface
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a new TUI instance
func NewTUI() *TUI {
	model := NewModel()
	program := tea.NewProgram(&model, tea.WithAltScreen())

	return &TUI{
		program: program,
		model:   &model,
	}
}

// Start starts the TUI
func (t *TUI) Start() error {
	go func() {
		// Send initial tick to start the spinner
		time.Sleep(100 * time.Millisecond)
		t.program.Send(TickMsg(time.Now()))
	}()

	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}

// Send sends a message to the TUI
func (t *TUI) Send(msg tea.Msg) {
	if t.program != nil {
		t.program.Send(msg)
	}
}

// StartJurisdiction notifies the TUI of a new jurisdiction
func (t *TUI) StartJurisdiction(id, title string, totalSets int) {
	t.Send(SendJurisdictionStart(id, title, totalSets))
}

// StartSet notifies the TUI that a set fetch has started
func (t *TUI) StartSet(id, title string) {
	t.Send(SendSetStart(id, title))
}

// CompleteSet notifies the TUI that a set has been written
func (t *TUI) CompleteSet(id string, usedFallback bool) {
	t.Send(SendSetComplete(id, usedFallback))
}

// SkipSet notifies the TUI that a set was skipped
func (t *TUI) SkipSet(id string) {
	t.Send(SendSetSkip(id))
}

// FailSet notifies the TUI that a set failed
func (t *TUI) FailSet(id string, err error) {
	t.Send(SendSetError(id, err))
}

// RecordFallback notifies the TUI that a write landed on its fallback path
func (t *TUI) RecordFallback(primary, fallback string) {
	t.Send(SendFallback(primary, fallback))
}

// Log sends a log message to the TUI
func (t *TUI) Log(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	t.Send(SendLog(level, message))
}

// LogInfo logs an info message
func (t *TUI) LogInfo(format string, args ...interface{}) {
	t.Log("INFO", format, args...)
}

// LogSuccess logs a success message
func (t *TUI) LogSuccess(format string, args ...interface{}) {
	t.Log("SUCCESS", format, args...)
}

// LogWarning logs a warning message
func (t *TUI) LogWarning(format string, args ...interface{}) {
	t.Log("WARN", format, args...)
}

// LogError logs an error message
func (t *TUI) LogError(format string, args ...interface{}) {
	t.Log("ERROR", format, args...)
}

// IsPaused returns whether the sync is paused
func (t *TUI) IsPaused() bool {
	t.model.mu.RLock()
	defer t.model.mu.RUnlock()
	return t.model.isPaused
}
