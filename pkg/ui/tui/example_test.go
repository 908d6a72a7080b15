package tui_test

import (
	"fmt"
	"time"

	"standardspull/pkg/ui/tui"
)

func ExampleTUI() {
	// Create a new sync dashboard
	terminal := tui.NewTUI()

	// Start the TUI in a goroutine
	go func() {
		if err := terminal.Start(); err != nil {
			fmt.Printf("TUI error: %v\n", err)
		}
	}()

	// Simulate a jurisdiction sync
	terminal.StartJurisdiction("49FCDF", "California", 10)
	for i := 1; i <= 10; i++ {
		id := fmt.Sprintf("set_%d", i)
		terminal.StartSet(id, fmt.Sprintf("Grade %d Mathematics", i))
		time.Sleep(150 * time.Millisecond)

		switch {
		case i%5 == 0:
			terminal.FailSet(id, fmt.Errorf("simulated fetch error"))
		case i%3 == 0:
			terminal.RecordFallback(
				fmt.Sprintf("standards/california/math/grade-%d__%s.json", i, id),
				fmt.Sprintf("standards/california/%s.json", id),
			)
			terminal.CompleteSet(id, true)
		default:
			terminal.CompleteSet(id, false)
		}
	}

	// Add some logs
	terminal.LogInfo("Starting sync run")
	terminal.LogWarning("Listing path exceeded length limit")
	terminal.LogError("Failed to fetch jurisdiction detail")
	terminal.LogSuccess("Sync completed")

	// Keep running for demo
	time.Sleep(5 * time.Second)
	terminal.Stop()
}
