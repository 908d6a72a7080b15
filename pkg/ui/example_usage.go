// Package ui provides terminal UI components for the standards sync CLI
// This file demonstrates example usage of the UI components
package ui

/*
Example usage of the UI components:

// Terminal colors and output
ui.PrintLogo()                                    // Print ASCII logo
ui.PrintInfo("Output", "standards")               // Cyan label, yellow value
ui.PrintSuccess("Sync completed!")                // Green success message
ui.PrintError("Failed to fetch set", err)         // Red error message
ui.PrintWarning("Skipping jurisdiction")          // Yellow warning message
ui.PrintHighlight("[SYNCING]")                    // Magenta highlight message

// Progress tracking
tracker := ui.NewStatusTracker()
tracker.RecordWritten(false)                      // Count a saved set
tracker.RecordSkipped()                           // Count a resume skip
tracker.PrintProgress()                           // Inline counters line
tracker.PrintJurisdictionStatus("California", 5, 54)
tracker.PrintRunSummary()                         // Final totals

// Minimal per-jurisdiction display
display := ui.NewProgressDisplay(false)
display.StartJurisdiction("California", 120)
display.StartSet("ABC123", "Grade 8 Mathematics")
display.CompleteSet("ABC123", false)
display.Complete()

// Notifications (cross-platform)
notifier := ui.NewNotifier()
notifier.SendNotification("Sync Complete", "All standard sets downloaded")
notifier.SendError("Error", "Both primary and fallback writes failed")
notifier.SendSuccess("Success", "Verification passed")

// Direct color usage
fmt.Printf("%s: %s\n", ui.Cyan("Jurisdiction"), ui.Yellow("common-core"))
fmt.Println(ui.Green("✓ Saved"))
fmt.Println(ui.Red("✗ Failed"))
*/
