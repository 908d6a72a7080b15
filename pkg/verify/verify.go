// Package verify reconciles the path index against the persisted
// per-jurisdiction set listings and summarizes coverage and fallback
// usage. The pass is strictly read-only: a corrupt or missing index is
// reported, never quarantined or repaired.
package verify

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	errs "standardspull/pkg/errors"
	"standardspull/pkg/logger"
	"standardspull/pkg/pathindex"
	"standardspull/pkg/pathsafe"
)

const maxMissingExamples = 10

// Report is the outcome of one verification pass
type Report struct {
	// JurisdictionFiles counts the set-listing files found
	JurisdictionFiles int
	// Expected counts the distinct set IDs named across all listings
	Expected int
	// Saved counts the entries in the path index
	Saved int
	// Missing holds every expected ID absent from the index, sorted
	Missing []string
	// FallbackLogExists reports whether the audit log file is present
	FallbackLogExists bool
	// FallbackCount counts the audit log lines
	FallbackCount int
	// FallbackExample is the first audit log line, verbatim
	FallbackExample string
}

// Run reconciles the path index against the persisted set listings
// under the given layout
func Run(layout pathsafe.Layout) (*Report, error) {
	indexPath := layout.IndexFile()

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s: %w", indexPath, errs.ErrNoPathIndex)
		}
		return nil, fmt.Errorf("failed to read path index: %w", err)
	}

	// Only the keys matter here; entry shapes are not validated
	var index map[string]json.RawMessage
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse path index %s: %w", indexPath, err)
	}

	files, err := filepath.Glob(filepath.Join(layout.IndexDir(), "standard_sets_*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan set listings: %w", err)
	}
	sort.Strings(files)

	expected := make(map[string]bool)
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read set listing %s: %w", file, err)
		}

		var sets []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(raw, &sets); err != nil {
			return nil, fmt.Errorf("failed to parse set listing %s: %w", file, err)
		}
		for _, s := range sets {
			if s.ID != "" {
				expected[s.ID] = true
			}
		}
	}

	var missing []string
	for id := range expected {
		if _, ok := index[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	report := &Report{
		JurisdictionFiles: len(files),
		Expected:          len(expected),
		Saved:             len(index),
		Missing:           missing,
	}

	store := pathindex.NewStore(layout, nil)
	if store.HasFallbackLog() {
		lines, err := store.FallbackLines()
		if err != nil {
			return nil, err
		}
		report.FallbackLogExists = true
		report.FallbackCount = len(lines)
		if len(lines) > 0 {
			report.FallbackExample = lines[0]
		}
	}

	logger.GetLogger().DebugWithFields("verification pass completed", map[string]interface{}{
		"listings": report.JurisdictionFiles,
		"expected": report.Expected,
		"saved":    report.Saved,
		"missing":  len(report.Missing),
	})

	return report, nil
}

// Coverage returns the percentage of expected sets present in the index.
// An empty expected universe reports zero rather than dividing.
func (r *Report) Coverage() float64 {
	if r.Expected == 0 {
		return 0
	}
	return float64(r.Saved) / float64(r.Expected) * 100
}

// Render writes the verification summary in its fixed report shape
func (r *Report) Render(w io.Writer) {
	fmt.Fprintln(w, "=== Standards Pull Verification ===")
	fmt.Fprintf(w, "Jurisdictions indexed: %d\n", r.JurisdictionFiles)
	fmt.Fprintf(w, "Expected sets total:   %d\n", r.Expected)
	fmt.Fprintf(w, "Saved sets total:      %d\n", r.Saved)
	fmt.Fprintf(w, "Coverage:              %.2f%%\n", r.Coverage())

	if len(r.Missing) > 0 {
		fmt.Fprintf(w, "\nMissing sets: %d\n", len(r.Missing))
		examples := r.Missing
		if len(examples) > maxMissingExamples {
			examples = examples[:maxMissingExamples]
		}
		fmt.Fprintf(w, "Example missing IDs: %v\n", examples)
	} else {
		fmt.Fprintln(w, "\nNo missing sets. All expected sets saved.")
	}

	if r.FallbackLogExists {
		fmt.Fprintf(w, "\nFallback paths used: %d\n", r.FallbackCount)
		if r.FallbackExample != "" {
			fmt.Fprintf(w, "Example fallback: %s\n", r.FallbackExample)
		}
	} else {
		fmt.Fprintln(w, "\nNo fallback log file found (no path length issues encountered).")
	}
}
