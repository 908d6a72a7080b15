package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// ProgressDisplay provides a clean, minimal progress display for a sync run
type ProgressDisplay struct {
	mu           sync.Mutex
	jurisdiction string
	setsTotal    int
	setsDone     int
	written      int
	skipped      int
	failed       int
	fallbacks    int
	currentSet   string
	startTime    time.Time
	isDebug      bool
}

// NewProgressDisplay creates a new progress display
func NewProgressDisplay(debug bool) *ProgressDisplay {
	return &ProgressDisplay{
		startTime: time.Now(),
		isDebug:   debug,
	}
}

// StartJurisdiction switches the display to a new jurisdiction
func (p *ProgressDisplay) StartJurisdiction(label string, totalSets int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.jurisdiction = label
	p.setsTotal = totalSets
	p.setsDone = 0
	p.currentSet = ""

	if p.isDebug {
		fmt.Printf("\n%s %s (%d sets)\n", Magenta("→"), label, totalSets)
	} else {
		fmt.Printf("\n%s %s\n", Cyan("▸"), label)
		p.printProgress()
	}
}

// StartSet marks the start of one set fetch
func (p *ProgressDisplay) StartSet(setID, title string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.currentSet = title
	if p.currentSet == "" {
		p.currentSet = setID
	}

	if !p.isDebug {
		p.printProgress()
	}
}

// CompleteSet marks one set as written
func (p *ProgressDisplay) CompleteSet(setID string, usedFallback bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setsDone++
	p.written++
	if usedFallback {
		p.fallbacks++
	}

	if p.isDebug {
		marker := Green("✓")
		if usedFallback {
			marker = Yellow("↪")
		}
		fmt.Printf("%s %s\n", marker, setID)
	} else {
		p.printProgress()
	}
}

// SkipSet marks one set as already present
func (p *ProgressDisplay) SkipSet(setID string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setsDone++
	p.skipped++

	if p.isDebug {
		fmt.Printf("%s %s\n", Dim("⏭"), setID)
	} else {
		p.printProgress()
	}
}

// FailSet marks one set as failed
func (p *ProgressDisplay) FailSet(setID string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.setsDone++
	p.failed++

	if p.isDebug {
		fmt.Printf("%s %s - %v\n", Red("✗"), setID, err)
	} else {
		p.printProgress()
	}
}

// printProgress prints the minimal progress line. Caller holds the lock.
func (p *ProgressDisplay) printProgress() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.written+p.skipped) / elapsed.Minutes()

	barWidth := 20
	filled := 0
	if p.setsTotal > 0 {
		progress := float64(p.setsDone) / float64(p.setsTotal)
		filled = int(progress * float64(barWidth))
		if filled > barWidth {
			filled = barWidth
		}
	}
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)

	line := fmt.Sprintf("\r%s [%s] %d/%d • %.1f/min • %d saved",
		Cyan(p.jurisdiction),
		bar,
		p.setsDone,
		p.setsTotal,
		rate,
		p.written,
	)

	if p.currentSet != "" {
		name := p.currentSet
		if len(name) > 30 {
			name = name[:27] + "..."
		}
		line += fmt.Sprintf(" • %s", name)
	}

	if p.fallbacks > 0 {
		line += fmt.Sprintf(" • %s", Yellow(fmt.Sprintf("%d fallback", p.fallbacks)))
	}

	if p.failed > 0 {
		line += fmt.Sprintf(" • %s", Red(fmt.Sprintf("%d errors", p.failed)))
	}

	fmt.Printf("\r%s\r%s", strings.Repeat(" ", 120), line)
}

// Complete marks the entire sync as complete
func (p *ProgressDisplay) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(p.startTime)

	fmt.Printf("\n\n%s Saved %d standard sets\n",
		Green("✓"),
		p.written,
	)

	fmt.Printf("  %s %d skipped in %s (%.1f sets/min)\n",
		Dim("•"),
		p.skipped,
		p.formatDuration(elapsed),
		float64(p.written+p.skipped)/elapsed.Minutes(),
	)

	if p.fallbacks > 0 {
		fmt.Printf("  %s %d written via fallback paths\n",
			Dim("•"),
			p.fallbacks,
		)
	}

	if p.failed > 0 {
		fmt.Printf("  %s %d sets failed\n",
			Dim("•"),
			p.failed,
		)
	}
}

// PacingNote shows the configured inter-request delay
func (p *ProgressDisplay) PacingNote(delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isDebug {
		fmt.Printf("%s Pacing requests every %s\n", Yellow("⚠"), delay)
	}
}

// formatDuration formats a duration in a human-readable way
func (p *ProgressDisplay) formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	} else if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
