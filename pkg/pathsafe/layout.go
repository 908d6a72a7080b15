package pathsafe

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// DefaultMaxPathLen is the path length threshold above which a computed
	// path is rejected in favor of the fallback location. Conservative enough
	// to stay under common filesystem ceilings with headroom for the caller's
	// working-directory prefix.
	DefaultMaxPathLen = 240

	// DirSlugMax bounds short slugs used as directory names
	DirSlugMax = 40

	// LabelSlugMax bounds the label portion of a set filename
	LabelSlugMax = 80

	indexDirName = "_index"
)

// IsTooLong reports whether a rendered path exceeds the length threshold
func IsTooLong(path string, threshold int) bool {
	return len(path) > threshold
}

// SafeFilename composes a set filename from a human label and the set id:
// <shortSlug(label)>__<lowercased id>.json. The label portion is bounded so
// it cannot blow the length budget on its own.
func SafeFilename(label, setID string, maxLabelLen int) string {
	return fmt.Sprintf("%s__%s.json", ShortSlug(label, maxLabelLen), strings.ToLower(setID))
}

// Layout centralizes every path the sync produces under one output root.
type Layout struct {
	// Root is the output directory holding all artifacts
	Root string
	// MaxPathLen is the too-long threshold applied to computed paths
	MaxPathLen int
}

// NewLayout returns a layout rooted at dir with the default length threshold
func NewLayout(dir string) Layout {
	return Layout{
		Root:       dir,
		MaxPathLen: DefaultMaxPathLen,
	}
}

// IndexDir returns the bookkeeping directory holding listings, the path
// index, and the fallback log
func (l Layout) IndexDir() string {
	return filepath.Join(l.Root, indexDirName)
}

// JurisdictionsFile returns the path of the full jurisdiction listing snapshot
func (l Layout) JurisdictionsFile() string {
	return filepath.Join(l.IndexDir(), "jurisdictions.json")
}

// SetListingFile returns the path of one jurisdiction's set-summary listing
func (l Layout) SetListingFile(jurisdictionSlug string) string {
	return filepath.Join(l.IndexDir(), fmt.Sprintf("standard_sets_%s.json", jurisdictionSlug))
}

// IndexFile returns the path of the persisted path index
func (l Layout) IndexFile() string {
	return filepath.Join(l.IndexDir(), "standard_set_paths.json")
}

// FallbackLogFile returns the path of the append-only fallback audit log
func (l Layout) FallbackLogFile() string {
	return filepath.Join(l.IndexDir(), "fallback_log.jsonl")
}

// SetFile returns the primary artifact location for a set:
// <root>/<jurisdiction-slug>/<subject-slug>/<filename>
func (l Layout) SetFile(jurisdictionSlug, subjectSlug, filename string) string {
	return filepath.Join(l.Root, jurisdictionSlug, subjectSlug, filename)
}

// FallbackSetFile returns the flat fallback location used when the primary
// path is rejected: <root>/<short-slug>/<lowercased id>.json
func (l Layout) FallbackSetFile(jurisdictionShortSlug, setID string) string {
	return filepath.Join(l.Root, jurisdictionShortSlug, fmt.Sprintf("%s.json", strings.ToLower(setID)))
}

// TooLong applies the layout's threshold to a computed path
func (l Layout) TooLong(path string) bool {
	return IsTooLong(path, l.MaxPathLen)
}
