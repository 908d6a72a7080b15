package ui

import (
	"fmt"
	"strings"
	"time"
)

const (
	ProgressBar   = "█"
	ProgressEmpty = "░"
)

// StatusTracker keeps running counters for a sync run
type StatusTracker struct {
	Jurisdictions int
	Written       int
	Skipped       int
	Failed        int
	Fallbacks     int
	StartTime     time.Time
}

// NewStatusTracker creates a new status tracker
func NewStatusTracker() *StatusTracker {
	return &StatusTracker{
		StartTime: time.Now(),
	}
}

// RecordWritten counts one persisted standard set
func (st *StatusTracker) RecordWritten(usedFallback bool) {
	st.Written++
	if usedFallback {
		st.Fallbacks++
	}
}

// RecordSkipped counts one set skipped because its output already exists
func (st *StatusTracker) RecordSkipped() {
	st.Skipped++
}

// RecordFailed counts one set that could not be fetched or written
func (st *StatusTracker) RecordFailed() {
	st.Failed++
}

// JurisdictionDone counts one fully processed jurisdiction
func (st *StatusTracker) JurisdictionDone() {
	st.Jurisdictions++
}

// Processed returns the number of sets handled so far, skips included
func (st *StatusTracker) Processed() int {
	return st.Written + st.Skipped + st.Failed
}

// GetElapsedTime returns the elapsed time since tracking started
func (st *StatusTracker) GetElapsedTime() time.Duration {
	return time.Since(st.StartTime)
}

// GetSyncRate returns the average processing rate (sets per minute)
func (st *StatusTracker) GetSyncRate() float64 {
	elapsed := st.GetElapsedTime().Minutes()
	if elapsed == 0 {
		return 0
	}
	return float64(st.Processed()) / elapsed
}

// GetJurisdictionProgress returns a formatted progress bar for the sets of
// the current jurisdiction
func (st *StatusTracker) GetJurisdictionProgress(done, total int) string {
	const width = 20
	filled := 0
	if total > 0 {
		progress := float64(done) / float64(total)
		filled = int(progress * float64(width))
		if filled > width {
			filled = width
		}
	}

	bar := strings.Repeat(ProgressBar, filled) +
		strings.Repeat(ProgressEmpty, width-filled)

	return fmt.Sprintf("[%s] %d/%d", bar, done, total)
}

// PrintProgress prints the current progress status on one line
func (st *StatusTracker) PrintProgress() {
	if IsQuietMode() {
		return
	}
	fmt.Printf("\r%s Written: %d | Skipped: %d | Failed: %d",
		Green("[SYNCED]"),
		st.Written,
		st.Skipped,
		st.Failed)
}

// PrintJurisdictionStatus announces the jurisdiction being processed
func (st *StatusTracker) PrintJurisdictionStatus(label string, position, total int) {
	if IsQuietMode() {
		return
	}
	fmt.Printf("\n%s %s %s\n",
		Magenta("[JURISDICTION]"),
		Cyan(label),
		Yellow(fmt.Sprintf("(%d/%d)", position, total)))
}

// PrintRunSummary prints the end-of-run totals
func (st *StatusTracker) PrintRunSummary() {
	if IsQuietMode() {
		return
	}
	elapsed := st.GetElapsedTime().Round(time.Second)
	fmt.Printf("\n%s %d jurisdictions | %d written | %d skipped | %d failed | %d via fallback | %s\n",
		Green("[DONE]"),
		st.Jurisdictions,
		st.Written,
		st.Skipped,
		st.Failed,
		st.Fallbacks,
		elapsed)
}
