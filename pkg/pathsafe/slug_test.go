package pathsafe

import (
	"strings"
	"testing"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple word", "Math", "math"},
		{"spaces collapse to dash", "Common Core", "common-core"},
		{"punctuation run collapses", "English / Language Arts", "english-language-arts"},
		{"leading and trailing trimmed", "  (California)  ", "california"},
		{"digits kept", "Grade 8", "grade-8"},
		{"mixed separators", "K--12_Science!", "k-12-science"},
		{"already slugged", "grade-8", "grade-8"},
		{"empty input", "", "unnamed"},
		{"only punctuation", "***", "unnamed"},
		{"only whitespace", "   ", "unnamed"},
		{"unicode stripped", "Español Básico", "espa-ol-b-sico"},
		{"uppercase digits mix", "ALGEBRA II", "algebra-ii"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.input); got != tt.expected {
				t.Errorf("Slug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSlugCharset(t *testing.T) {
	inputs := []string{
		"Common Core State Standards",
		"  !!  ",
		"North Dakota / K-12",
		"über größe",
		"a",
		strings.Repeat("x y ", 100),
	}

	for _, input := range inputs {
		got := Slug(input)

		if got == "" {
			t.Errorf("Slug(%q) returned empty string", input)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Errorf("Slug(%q) = %q has leading or trailing dash", input, got)
		}
		if strings.Contains(got, "--") {
			t.Errorf("Slug(%q) = %q contains a dash run", input, got)
		}
		for _, r := range got {
			valid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
			if !valid {
				t.Errorf("Slug(%q) = %q contains invalid character %q", input, got, r)
			}
		}
	}
}

func TestSlugDeterministic(t *testing.T) {
	input := "Common Core -- Mathematics (Grade 8)"
	first := Slug(input)
	for i := 0; i < 5; i++ {
		if got := Slug(input); got != first {
			t.Fatalf("Slug(%q) not deterministic: %q vs %q", input, first, got)
		}
	}
}

func TestShortSlug(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"no truncation needed", "California", 40, "california"},
		{"exact length", "abcde", 5, "abcde"},
		{"truncated", "common-core-state-standards", 11, "common-core"},
		{"truncation may split a word", "north dakota", 7, "north-d"},
		{"zero max", "anything", 0, ""},
		{"negative max treated as zero", "anything", -3, ""},
		{"placeholder also truncated", "***", 3, "unn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortSlug(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("ShortSlug(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestShortSlugLengthBound(t *testing.T) {
	inputs := []string{
		"",
		"California Common Core State Standards for Mathematics",
		strings.Repeat("long ", 200),
		"!!!",
	}

	for _, input := range inputs {
		for _, maxLen := range []int{0, 1, 5, 40, 1000} {
			got := ShortSlug(input, maxLen)
			if len(got) > maxLen {
				t.Errorf("len(ShortSlug(%q, %d)) = %d exceeds bound", input, maxLen, len(got))
			}
		}
	}
}
