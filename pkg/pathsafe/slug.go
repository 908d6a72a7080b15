package pathsafe

import "strings"

// Placeholder is the token substituted when slugging leaves nothing usable
const Placeholder = "unnamed"

// Slug converts free text into a lowercase filesystem-safe token. Any run of
// characters outside [a-z0-9] collapses to a single dash, leading and
// trailing dashes are trimmed, and text that slugs away to nothing maps to
// the placeholder token. Deterministic and total.
func Slug(text string) string {
	var b strings.Builder
	pendingDash := false

	for _, r := range strings.ToLower(text) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingDash = true
			continue
		}
		if pendingDash && b.Len() > 0 {
			b.WriteByte('-')
		}
		pendingDash = false
		b.WriteRune(r)
	}

	if b.Len() == 0 {
		return Placeholder
	}
	return b.String()
}

// ShortSlug slugs the text and truncates the result to at most maxLen
// characters. Used to keep directory names bounded.
func ShortSlug(text string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}

	s := Slug(text)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
