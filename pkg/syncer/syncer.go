package syncer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"standardspull/pkg/catalog"
	"standardspull/pkg/config"
	errs "standardspull/pkg/errors"
	"standardspull/pkg/logger"
	"standardspull/pkg/pathindex"
	"standardspull/pkg/pathsafe"
	"standardspull/pkg/ratelimit"
	"standardspull/pkg/ui"
)

const (
	pauseCheckInterval = 200 * time.Millisecond
)

// Syncer orchestrates the bulk standard-set download process
type Syncer struct {
	client      CatalogClient
	store       *pathindex.Store
	layout      pathsafe.Layout
	rateLimiter ratelimit.Limiter
	tracker     *ui.StatusTracker
	progress    *ui.ProgressDisplay
	notifier    *ui.Notifier
	monitor     ui.SyncMonitor
	config      *config.Config
	logger      logger.Logger
	runID       string
	notify      bool
}

// Result summarizes one sync run
type Result struct {
	Jurisdictions       int
	JurisdictionsFailed int
	SetsWritten         int
	SetsSkipped         int
	SetsFailed          int
	FallbacksUsed       int
}

// setResult captures the outcome of one set download
type setResult struct {
	skipped      bool
	usedFallback bool
	interrupted  bool
	path         string
	primary      string
	err          error
}

// New creates a new Syncer instance
func New(cfg *config.Config) (*Syncer, error) {
	log := logger.GetLogger()

	if cfg.API.Key == "" {
		return nil, errs.ErrMissingAPIKey
	}

	client := catalog.NewClient(cfg, log)

	layout := pathsafe.NewLayout(cfg.Output.BaseDirectory)
	if cfg.Output.PathLengthLimit > 0 {
		layout.MaxPathLen = cfg.Output.PathLengthLimit
	}

	// Pacing limiter based on config
	var limiter ratelimit.Limiter
	if cfg.Sync.RequestDelay > 0 {
		limiter = ratelimit.NewInterval(cfg.Sync.RequestDelay)
	} else {
		limiter = ratelimit.Nop{}
	}

	runID := uuid.New().String()

	return &Syncer{
		client:      client,
		store:       pathindex.NewStore(layout, log),
		layout:      layout,
		rateLimiter: limiter,
		tracker:     ui.NewStatusTracker(),
		notifier:    ui.NewNotifier(),
		config:      cfg,
		logger:      log.WithField("run_id", runID),
		runID:       runID,
	}, nil
}

// SetMonitor attaches a live dashboard to the sync run
func (s *Syncer) SetMonitor(monitor ui.SyncMonitor) {
	s.monitor = monitor
}

// SetNotifications toggles desktop notifications for run milestones
func (s *Syncer) SetNotifications(enabled bool) {
	s.notify = enabled
}

// Run downloads every selected jurisdiction's standard sets. Individual
// set and jurisdiction failures are logged and counted but do not stop
// the run; only the initial jurisdiction listing, a cancelled context,
// or an unwritable output directory end it early.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	if s.monitor != nil {
		s.monitor.LogInfo("Starting standards sync against %s", s.config.API.BaseURL)
	} else {
		ui.PrintHighlight("\n[STARTING STANDARDS SYNC]\n")
	}

	s.logger.InfoWithFields("Starting standards sync", map[string]interface{}{
		"base_url":   s.config.API.BaseURL,
		"output_dir": s.layout.Root,
		"action":     "sync_start",
	})

	listing, err := s.client.ListJurisdictions()
	if err != nil {
		s.logger.WithError(err).Error("Failed to fetch jurisdiction listing")
		return nil, fmt.Errorf("failed to fetch jurisdiction listing: %w", err)
	}

	if err := pathindex.WriteJSON(s.layout.JurisdictionsFile(), listing.Raw); err != nil {
		s.logger.WithError(err).Error("Failed to persist jurisdiction listing")
		return nil, fmt.Errorf("failed to persist jurisdiction listing: %w", err)
	}

	s.logger.InfoWithFields("Jurisdiction listing persisted", map[string]interface{}{
		"jurisdictions": len(listing.Jurisdictions),
		"snapshot":      s.layout.JurisdictionsFile(),
	})

	if err := s.store.Load(); err != nil {
		s.logger.WithError(err).Error("Failed to load path index")
		return nil, fmt.Errorf("failed to load path index: %w", err)
	}

	if indexed := s.store.Len(); indexed > 0 {
		s.logger.InfoWithFields("Resuming with existing path index", map[string]interface{}{
			"indexed_sets": indexed,
		})
		if s.monitor != nil {
			s.monitor.LogInfo("Resuming: %d sets already indexed", indexed)
		} else {
			ui.PrintInfo("Resuming", fmt.Sprintf("%d sets already indexed", indexed))
		}
	}

	jurisdictions := s.filterJurisdictions(listing.Jurisdictions)

	s.logger.InfoWithFields("Jurisdictions selected", map[string]interface{}{
		"selected": len(jurisdictions),
		"listed":   len(listing.Jurisdictions),
	})

	// Initialize progress display if not using the dashboard
	if s.monitor == nil && !ui.IsQuietMode() {
		debugMode := strings.ToLower(s.config.Logging.Level) == "debug"
		s.progress = ui.NewProgressDisplay(debugMode)
		s.progress.PacingNote(s.config.Sync.RequestDelay)
	}

	result := &Result{}
	total := len(jurisdictions)

	for i, j := range jurisdictions {
		if err := s.interrupted(ctx); err != nil {
			s.finishInterrupted(result)
			return result, err
		}
		if err := s.waitWhilePaused(ctx); err != nil {
			s.finishInterrupted(result)
			return result, err
		}

		if err := s.processJurisdiction(ctx, j, i+1, total, result); err != nil {
			if errors.Is(err, errs.ErrInterrupted) {
				s.finishInterrupted(result)
				return result, err
			}
			// Jurisdiction failures are not fatal to the run
			result.JurisdictionsFailed++
			continue
		}

		result.Jurisdictions++
		s.tracker.JurisdictionDone()
	}

	s.logger.InfoWithFields("Standards sync completed", map[string]interface{}{
		"jurisdictions":        result.Jurisdictions,
		"jurisdictions_failed": result.JurisdictionsFailed,
		"sets_written":         result.SetsWritten,
		"sets_skipped":         result.SetsSkipped,
		"sets_failed":          result.SetsFailed,
		"fallbacks_used":       result.FallbacksUsed,
		"action":               "sync_complete",
	})

	if s.monitor != nil {
		s.monitor.LogSuccess("Sync completed: %d written, %d skipped, %d failed",
			result.SetsWritten, result.SetsSkipped, result.SetsFailed)
	} else if s.progress != nil {
		s.progress.Complete()
	} else {
		s.tracker.PrintRunSummary()
	}

	if s.notify {
		s.notifier.SendSuccess("SYNC COMPLETE", fmt.Sprintf("%d standard sets written", result.SetsWritten))
	}

	return result, nil
}

// finishInterrupted records an early exit. The path index is written
// through on every set, so there is nothing to flush here.
func (s *Syncer) finishInterrupted(result *Result) {
	s.logger.WarnWithFields("Sync interrupted", map[string]interface{}{
		"jurisdictions_done": result.Jurisdictions,
		"sets_written":       result.SetsWritten,
		"action":             "sync_interrupted",
	})

	if s.monitor != nil {
		s.monitor.LogWarning("Sync interrupted, progress saved in the path index")
	} else {
		ui.PrintWarning("\n[SYNC INTERRUPTED - PROGRESS SAVED]\n")
	}

	if s.notify {
		s.notifier.SendNotification("SYNC INTERRUPTED", "Progress saved in the path index")
	}
}

// filterJurisdictions applies the allow-list, type, and count filters in
// listing order
func (s *Syncer) filterJurisdictions(all []catalog.Jurisdiction) []catalog.Jurisdiction {
	allow := make(map[string]bool, len(s.config.Sync.JurisdictionIDs))
	for _, id := range s.config.Sync.JurisdictionIDs {
		allow[id] = true
	}

	var selected []catalog.Jurisdiction
	for _, j := range all {
		if len(allow) > 0 && !allow[j.ID] {
			continue
		}
		if s.config.Sync.StatesOnly && !strings.EqualFold(j.Type, "state") {
			continue
		}
		selected = append(selected, j)
		if max := s.config.Sync.MaxJurisdictions; max > 0 && len(selected) >= max {
			break
		}
	}
	return selected
}

// processJurisdiction fetches one jurisdiction's detail, persists its set
// listing, and downloads each of its sets in order
func (s *Syncer) processJurisdiction(ctx context.Context, j catalog.Jurisdiction, position, total int, result *Result) error {
	label := j.Label()
	jSlug := pathsafe.Slug(label)

	s.logger.InfoWithFields("Processing jurisdiction", map[string]interface{}{
		"jurisdiction_id": j.ID,
		"label":           label,
		"position":        position,
		"total":           total,
	})

	detail, err := s.client.GetJurisdiction(j.ID)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"jurisdiction_id": j.ID,
			"label":           label,
		}).Error("Failed to fetch jurisdiction, skipping")

		if s.monitor != nil {
			s.monitor.LogError("Failed to fetch %s: %v", label, err)
		} else {
			ui.PrintError("\nFailed to fetch %s: %v. Skipping.\n", label, err)
		}
		return fmt.Errorf("failed to fetch jurisdiction %s: %w", j.ID, err)
	}

	sets, err := detail.Sets()
	if err != nil {
		s.logger.WithError(err).WithField("jurisdiction_id", j.ID).Error("Failed to parse standard sets, skipping")

		if s.monitor != nil {
			s.monitor.LogError("Failed to parse sets for %s: %v", label, err)
		} else {
			ui.PrintError("\nFailed to parse sets for %s: %v. Skipping.\n", label, err)
		}
		return fmt.Errorf("failed to parse standard sets for %s: %w", j.ID, err)
	}

	if err := s.persistSetListing(j, jSlug, detail); err != nil {
		// The listing is bookkeeping; set downloads still proceed
		s.logger.WithError(err).WithField("jurisdiction_id", j.ID).Error("Failed to persist set listing")
	}

	planned := sets
	if max := s.config.Sync.MaxSetsPerJurisdiction; max > 0 && len(planned) > max {
		planned = planned[:max]
		s.logger.InfoWithFields("Applying set cap for jurisdiction", map[string]interface{}{
			"jurisdiction_id": j.ID,
			"listed":          len(sets),
			"cap":             max,
		})
	}

	if s.monitor != nil {
		s.monitor.StartJurisdiction(j.ID, label, len(planned))
	} else if s.progress != nil {
		s.progress.StartJurisdiction(label, len(planned))
	} else {
		s.tracker.PrintJurisdictionStatus(label, position, total)
	}

	for _, set := range planned {
		if err := s.interrupted(ctx); err != nil {
			return err
		}
		if err := s.waitWhilePaused(ctx); err != nil {
			return err
		}

		res := s.processSet(ctx, j, jSlug, set)
		if res.interrupted {
			return errs.ErrInterrupted
		}
		s.recordSetResult(set, res, result)
	}

	s.logger.InfoWithFields("Jurisdiction completed", map[string]interface{}{
		"jurisdiction_id": j.ID,
		"sets":            len(planned),
	})

	return nil
}

// persistSetListing writes the jurisdiction's verbatim standardSets array
// next to the path index. A jurisdiction with no sets gets an empty array
// so downstream verification can still count the listing.
func (s *Syncer) persistSetListing(j catalog.Jurisdiction, jSlug string, detail *catalog.JurisdictionDetail) error {
	payload := detail.SetsRaw
	if len(payload) == 0 {
		payload = json.RawMessage("[]")
	}

	primary := s.layout.SetListingFile(jSlug)
	fallback := s.layout.SetListingFile(pathsafe.ShortSlug(j.Label(), pathsafe.DirSlugMax))

	path, err := s.store.WriteWithFallback(primary, fallback, payload, "set listing primary path rejected", map[string]string{
		"jurisdiction_id": j.ID,
		"run_id":          s.runID,
	})
	if err != nil {
		return err
	}

	s.logger.DebugWithFields("Set listing persisted", map[string]interface{}{
		"jurisdiction_id": j.ID,
		"path":            path,
	})

	return nil
}

// processSet downloads one standard set and records where it landed.
// Sets whose output already exists are skipped without touching the
// network; the index entry is still refreshed so the index reflects the
// latest catalog metadata.
func (s *Syncer) processSet(ctx context.Context, j catalog.Jurisdiction, jSlug string, set catalog.StandardSetSummary) setResult {
	subjectSlug := pathsafe.Slug(set.Subject)
	filename := pathsafe.SafeFilename(set.GradeLabel(), set.ID, pathsafe.LabelSlugMax)
	primary := s.layout.SetFile(jSlug, subjectSlug, filename)

	if s.monitor != nil {
		s.monitor.StartSet(set.ID, set.Title)
	} else if s.progress != nil {
		s.progress.StartSet(set.ID, set.Title)
	}

	if !s.config.Sync.Overwrite {
		if _, statErr := os.Stat(primary); statErr == nil {
			if err := s.store.Put(buildEntry(j, jSlug, set, primary, filename, false)); err != nil {
				return setResult{err: fmt.Errorf("failed to refresh index entry for %s: %w", set.ID, err)}
			}
			s.logger.DebugWithFields("Set already on disk, skipping", map[string]interface{}{
				"set_id": set.ID,
				"path":   primary,
			})
			return setResult{skipped: true, path: primary}
		}

		// The file may live on a fallback path from an earlier run; trust
		// the index before refetching
		if prev, ok := s.store.Get(set.ID); ok && prev.Path != "" {
			if _, statErr := os.Stat(prev.Path); statErr == nil {
				if err := s.store.Put(buildEntry(j, jSlug, set, prev.Path, prev.Filename, prev.UsedFallback)); err != nil {
					return setResult{err: fmt.Errorf("failed to refresh index entry for %s: %w", set.ID, err)}
				}
				s.logger.DebugWithFields("Set already indexed, skipping", map[string]interface{}{
					"set_id":        set.ID,
					"path":          prev.Path,
					"used_fallback": prev.UsedFallback,
				})
				return setResult{skipped: true, path: prev.Path, usedFallback: prev.UsedFallback}
			}
		}
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return setResult{interrupted: true, err: err}
	}

	s.logger.DebugWithFields("Fetching standard set", map[string]interface{}{
		"set_id":          set.ID,
		"jurisdiction_id": j.ID,
		"subject":         set.Subject,
	})

	payload, err := s.client.GetStandardSet(set.ID)
	if err != nil {
		s.logger.WithError(err).WithFields(map[string]interface{}{
			"set_id":          set.ID,
			"jurisdiction_id": j.ID,
		}).Error("Failed to fetch standard set")
		return setResult{err: fmt.Errorf("failed to fetch standard set %s: %w", set.ID, err)}
	}

	fallback := s.layout.FallbackSetFile(pathsafe.ShortSlug(j.Label(), pathsafe.DirSlugMax), set.ID)

	path, err := s.store.WriteWithFallback(primary, fallback, payload, "standard set primary path rejected", map[string]string{
		"set_id":          set.ID,
		"jurisdiction_id": j.ID,
		"subject":         set.Subject,
		"run_id":          s.runID,
	})
	if err != nil {
		s.logger.WithError(err).WithField("set_id", set.ID).Error("Failed to write standard set")
		return setResult{err: fmt.Errorf("failed to write standard set %s: %w", set.ID, err)}
	}

	usedFallback := path != primary
	entryFilename := filename
	if usedFallback {
		entryFilename = filepath.Base(path)
	}

	if err := s.store.Put(buildEntry(j, jSlug, set, path, entryFilename, usedFallback)); err != nil {
		s.logger.WithError(err).WithField("set_id", set.ID).Error("Failed to update path index")
		return setResult{err: fmt.Errorf("failed to update path index for %s: %w", set.ID, err)}
	}

	s.logger.InfoWithFields("Standard set written", map[string]interface{}{
		"set_id":        set.ID,
		"path":          path,
		"used_fallback": usedFallback,
	})

	return setResult{path: path, primary: primary, usedFallback: usedFallback}
}

// recordSetResult updates counters and whichever display surface is active
func (s *Syncer) recordSetResult(set catalog.StandardSetSummary, res setResult, result *Result) {
	switch {
	case res.err != nil:
		result.SetsFailed++
		s.tracker.RecordFailed()
		if s.monitor != nil {
			s.monitor.FailSet(set.ID, res.err)
		} else if s.progress != nil {
			s.progress.FailSet(set.ID, res.err)
		} else {
			ui.PrintError("\nFailed set %s: %v\n", set.ID, res.err)
		}
	case res.skipped:
		result.SetsSkipped++
		s.tracker.RecordSkipped()
		if s.monitor != nil {
			s.monitor.SkipSet(set.ID)
		} else if s.progress != nil {
			s.progress.SkipSet(set.ID)
		} else {
			s.tracker.PrintProgress()
		}
	default:
		result.SetsWritten++
		if res.usedFallback {
			result.FallbacksUsed++
		}
		s.tracker.RecordWritten(res.usedFallback)
		if s.monitor != nil {
			if res.usedFallback {
				s.monitor.RecordFallback(res.primary, res.path)
			}
			s.monitor.CompleteSet(set.ID, res.usedFallback)
		} else if s.progress != nil {
			s.progress.CompleteSet(set.ID, res.usedFallback)
		} else {
			s.tracker.PrintProgress()
		}
	}
}

// buildEntry maps one standard set onto its path index record
func buildEntry(j catalog.Jurisdiction, jSlug string, set catalog.StandardSetSummary, path, filename string, usedFallback bool) pathindex.Entry {
	return pathindex.Entry{
		SetID:             set.ID,
		Path:              path,
		JurisdictionID:    j.ID,
		JurisdictionSlug:  jSlug,
		JurisdictionTitle: j.Label(),
		Subject:           set.Subject,
		GradeLabel:        set.GradeLabel(),
		Filename:          filename,
		UsedFallback:      usedFallback,
	}
}

// interrupted reports whether the run context has been cancelled
func (s *Syncer) interrupted(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return errs.ErrInterrupted
	default:
		return nil
	}
}

// waitWhilePaused blocks while the attached monitor holds the run paused
func (s *Syncer) waitWhilePaused(ctx context.Context) error {
	if s.monitor == nil {
		return nil
	}

	for s.monitor.IsPaused() {
		select {
		case <-ctx.Done():
			return errs.ErrInterrupted
		case <-time.After(pauseCheckInterval):
		}
	}
	return nil
}
