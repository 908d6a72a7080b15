package catalog

import (
	"encoding/json"
	"strings"
)

// Jurisdiction is one entry from the jurisdiction listing. The API is
// inconsistent about which of title and name is populated, so both are
// kept and Label picks the display string.
type Jurisdiction struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Label returns the human-readable name for the jurisdiction, falling
// back to the ID when neither title nor name is set.
func (j Jurisdiction) Label() string {
	if j.Title != "" {
		return j.Title
	}
	if j.Name != "" {
		return j.Name
	}
	return j.ID
}

// StandardSetSummary is one set entry from a jurisdiction's standardSets
// array. Only the fields needed to organize downloads are modeled; the
// verbatim array is persisted separately.
type StandardSetSummary struct {
	ID              string   `json:"id"`
	Title           string   `json:"title,omitempty"`
	Subject         string   `json:"subject,omitempty"`
	EducationLevels []string `json:"educationLevels,omitempty"`
}

// GradeLabel joins the set's education levels into a single label,
// e.g. "09-10-11-12". Returns an empty string when no levels are listed.
func (s StandardSetSummary) GradeLabel() string {
	return strings.Join(s.EducationLevels, "-")
}

// JurisdictionListing pairs the parsed jurisdiction records with the
// verbatim response bytes so the listing can be persisted untouched.
type JurisdictionListing struct {
	Jurisdictions []Jurisdiction
	Raw           json.RawMessage
}

// JurisdictionDetail is one jurisdiction fetched by ID. SetsRaw carries
// the standardSets array exactly as the API returned it.
type JurisdictionDetail struct {
	Jurisdiction
	SetsRaw json.RawMessage `json:"standardSets"`
}

// Sets parses the standardSets array into summaries. A detail with no
// standardSets field yields an empty slice.
func (d *JurisdictionDetail) Sets() ([]StandardSetSummary, error) {
	if len(d.SetsRaw) == 0 {
		return nil, nil
	}
	var sets []StandardSetSummary
	if err := json.Unmarshal(d.SetsRaw, &sets); err != nil {
		return nil, err
	}
	return sets, nil
}
