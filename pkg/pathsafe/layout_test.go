package pathsafe

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestIsTooLong(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		threshold int
		expected  bool
	}{
		{"short path", "standards/ca/math.json", 240, false},
		{"exactly at threshold", strings.Repeat("a", 240), 240, false},
		{"one over threshold", strings.Repeat("a", 241), 240, true},
		{"empty path", "", 240, false},
		{"zero threshold", "a", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTooLong(tt.path, tt.threshold); got != tt.expected {
				t.Errorf("IsTooLong(len %d, %d) = %v, want %v", len(tt.path), tt.threshold, got, tt.expected)
			}
		})
	}
}

func TestIsTooLongMonotonic(t *testing.T) {
	// Extending a path that is already too long can never make it acceptable
	base := strings.Repeat("d", 250)
	if !IsTooLong(base, 240) {
		t.Fatal("base path should be too long")
	}

	for _, suffix := range []string{"x", "/more", strings.Repeat("y", 100)} {
		if !IsTooLong(base+suffix, 240) {
			t.Errorf("extension %q of a too-long path reported as acceptable", suffix)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		name        string
		label       string
		setID       string
		maxLabelLen int
		expected    string
	}{
		{
			name:        "simple grade label",
			label:       "Grade 8",
			setID:       "D10003FC",
			maxLabelLen: 80,
			expected:    "grade-8__d10003fc.json",
		},
		{
			name:        "label truncated to budget",
			label:       "Kindergarten through Second Grade",
			setID:       "ABC123",
			maxLabelLen: 12,
			expected:    "kindergarten__abc123.json",
		},
		{
			name:        "empty label uses placeholder",
			label:       "",
			setID:       "XYZ",
			maxLabelLen: 80,
			expected:    "unnamed__xyz.json",
		},
		{
			name:        "set id already lowercase",
			label:       "High School",
			setID:       "abc",
			maxLabelLen: 80,
			expected:    "high-school__abc.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeFilename(tt.label, tt.setID, tt.maxLabelLen)
			if got != tt.expected {
				t.Errorf("SafeFilename(%q, %q, %d) = %q, want %q",
					tt.label, tt.setID, tt.maxLabelLen, got, tt.expected)
			}
		})
	}
}

func TestLayoutPaths(t *testing.T) {
	layout := NewLayout("standards")

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"index dir", layout.IndexDir(), filepath.Join("standards", "_index")},
		{"jurisdictions file", layout.JurisdictionsFile(), filepath.Join("standards", "_index", "jurisdictions.json")},
		{"set listing file", layout.SetListingFile("california"), filepath.Join("standards", "_index", "standard_sets_california.json")},
		{"index file", layout.IndexFile(), filepath.Join("standards", "_index", "standard_set_paths.json")},
		{"fallback log file", layout.FallbackLogFile(), filepath.Join("standards", "_index", "fallback_log.jsonl")},
		{"set file", layout.SetFile("california", "math", "grade-8__abc.json"), filepath.Join("standards", "california", "math", "grade-8__abc.json")},
		{"fallback set file", layout.FallbackSetFile("california", "ABC123"), filepath.Join("standards", "california", "abc123.json")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}

func TestLayoutTooLong(t *testing.T) {
	layout := NewLayout("standards")
	layout.MaxPathLen = 30

	if layout.TooLong("standards/ca/math.json") {
		t.Error("short path flagged as too long")
	}
	if !layout.TooLong("standards/" + strings.Repeat("x", 40)) {
		t.Error("long path not flagged")
	}
}

func TestDefaultThreshold(t *testing.T) {
	layout := NewLayout("standards")
	if layout.MaxPathLen != DefaultMaxPathLen {
		t.Errorf("NewLayout threshold = %d, want %d", layout.MaxPathLen, DefaultMaxPathLen)
	}
	if DefaultMaxPathLen != 240 {
		t.Errorf("DefaultMaxPathLen = %d, want 240", DefaultMaxPathLen)
	}
}
