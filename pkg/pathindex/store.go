package pathindex

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"standardspull/pkg/logger"
	"standardspull/pkg/pathsafe"
)

// Entry records where one standard set actually landed on disk
type Entry struct {
	SetID             string `json:"set_id"`
	Path              string `json:"path"`
	JurisdictionID    string `json:"jurisdiction_id"`
	JurisdictionSlug  string `json:"jurisdiction_slug"`
	JurisdictionTitle string `json:"jurisdiction_title"`
	Subject           string `json:"subject"`
	GradeLabel        string `json:"grade_label"`
	Filename          string `json:"filename"`
	UsedFallback      bool   `json:"used_fallback"`
}

// Store handles path index and fallback log persistence
type Store struct {
	layout  pathsafe.Layout
	entries map[string]Entry
	logger  logger.Logger
}

// NewStore creates a store rooted at the given layout
func NewStore(layout pathsafe.Layout, log logger.Logger) *Store {
	if log == nil {
		log = logger.GetLogger()
	}

	return &Store{
		layout:  layout,
		entries: make(map[string]Entry),
		logger:  log,
	}
}

// Exists checks if the index file exists on disk
func (s *Store) Exists() bool {
	_, err := os.Stat(s.layout.IndexFile())
	return err == nil
}

// Load reads the index from disk. A missing file yields an empty index.
// A corrupt file is renamed aside with a .bak suffix and replaced by an
// empty index so a damaged file never blocks the next run.
func (s *Store) Load() error {
	indexPath := s.layout.IndexFile()

	data, err := os.ReadFile(indexPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.entries = make(map[string]Entry)
			return nil
		}
		return fmt.Errorf("failed to read path index: %w", err)
	}

	entries := make(map[string]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		backupPath := indexPath + ".bak"
		if renameErr := os.Rename(indexPath, backupPath); renameErr != nil {
			return fmt.Errorf("failed to move corrupt path index aside: %w", renameErr)
		}

		s.logger.WarnWithFields("path index is corrupt, starting fresh", map[string]interface{}{
			"path":   indexPath,
			"backup": backupPath,
			"error":  err.Error(),
		})
		s.entries = make(map[string]Entry)
		return nil
	}

	s.entries = entries

	s.logger.DebugWithFields("path index loaded", map[string]interface{}{
		"path":    indexPath,
		"entries": len(entries),
	})

	return nil
}

// Persist rewrites the whole index file atomically
func (s *Store) Persist() error {
	indexPath := s.layout.IndexFile()

	if err := os.MkdirAll(filepath.Dir(indexPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	// Write through a temp file so an interrupted rewrite never leaves
	// a half-written index behind
	tempPath := indexPath + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temporary index file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.entries); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode path index: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync path index: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close path index: %w", err)
	}

	if err := os.Rename(tempPath, indexPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace path index: %w", err)
	}

	return nil
}

// Put records an entry under its set ID and rewrites the index file
func (s *Store) Put(entry Entry) error {
	s.entries[entry.SetID] = entry
	return s.Persist()
}

// Get returns the entry for a set ID
func (s *Store) Get(setID string) (Entry, bool) {
	entry, exists := s.entries[setID]
	return entry, exists
}

// Len returns the number of indexed sets
func (s *Store) Len() int {
	return len(s.entries)
}

// SetIDs returns every indexed set ID in sorted order
func (s *Store) SetIDs() []string {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// WriteWithFallback writes data as indented JSON to primaryPath, or to
// fallbackPath when the primary is too long or the write fails. Each
// fallback placement appends one audit log line carrying the reason,
// the original error, both paths, and the caller's metadata. The
// returned path is the one that actually holds the data; callers must
// use it for all downstream bookkeeping.
func (s *Store) WriteWithFallback(primaryPath, fallbackPath string, data interface{}, reason string, metadata map[string]string) (string, error) {
	var primaryErr error
	if s.layout.TooLong(primaryPath) {
		primaryErr = fmt.Errorf("path length %d exceeds limit %d", len(primaryPath), s.layout.MaxPathLen)
	} else {
		primaryErr = WriteJSON(primaryPath, data)
	}
	if primaryErr == nil {
		return primaryPath, nil
	}

	if err := WriteJSON(fallbackPath, data); err != nil {
		return "", fmt.Errorf("primary write failed (%v); fallback write failed: %w", primaryErr, err)
	}

	if err := s.AppendFallback(reason, primaryErr, primaryPath, fallbackPath, metadata); err != nil {
		// The data is already on disk; the write still counts
		s.logger.ErrorWithFields("failed to append fallback log entry", map[string]interface{}{
			"fallback": fallbackPath,
			"error":    err.Error(),
		})
	}

	s.logger.InfoWithFields("wrote via fallback path", map[string]interface{}{
		"reason":   reason,
		"primary":  primaryPath,
		"fallback": fallbackPath,
	})

	return fallbackPath, nil
}

// AppendFallback appends one line to the fallback audit log. Lines are
// never rewritten or truncated; the log is strictly chronological.
func (s *Store) AppendFallback(reason string, cause error, primary, fallback string, metadata map[string]string) error {
	entry := map[string]interface{}{
		"reason":   reason,
		"primary":  primary,
		"fallback": fallback,
	}
	if cause != nil {
		entry["error"] = cause.Error()
	}
	for key, value := range metadata {
		entry[key] = value
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode fallback entry: %w", err)
	}

	logPath := s.layout.FallbackLogFile()
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open fallback log: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to append fallback entry: %w", err)
	}

	return nil
}

// HasFallbackLog checks if the fallback log file exists
func (s *Store) HasFallbackLog() bool {
	_, err := os.Stat(s.layout.FallbackLogFile())
	return err == nil
}

// FallbackLines returns the non-empty lines of the fallback log.
// A missing log yields nil with no error.
func (s *Store) FallbackLines() ([]string, error) {
	data, err := os.ReadFile(s.layout.FallbackLogFile())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read fallback log: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// WriteJSON writes v as indented JSON, creating parent directories first.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
