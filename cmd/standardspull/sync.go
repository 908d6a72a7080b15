package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"standardspull/pkg/auth"
	"standardspull/pkg/config"
	errs "standardspull/pkg/errors"
	"standardspull/pkg/logger"
	"standardspull/pkg/syncer"
	"standardspull/pkg/ui"
	"standardspull/pkg/ui/tui"
)

var (
	// Sync command flags
	outputDir        string
	baseURL          string
	requestDelay     time.Duration
	maxJurisdictions int
	maxSets          int
	jurisdictionIDs  []string
	statesOnly       bool
	overwrite        bool
	notify           bool
	useTUI           bool
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download every standard set into the local archive",
	Long: `Download the full catalog of standard sets into the local archive.

The sync walks all jurisdictions (optionally filtered), fetches each
standard set, and records where every file landed in the path index at
<output>/_index/standard_set_paths.json. Files that already exist are
skipped, so an interrupted run can simply be started again.

An API key is required. It is resolved from, in order:
  - STANDARDS_API_KEY environment variable (a .env file also works)
  - api.key in the configuration file
  - The key stored via 'standardspull auth login'`,
	Example: `  # Mirror the whole catalog
  standardspull sync

  # Only US states, into a custom directory
  standardspull sync --states-only --output /data/standards

  # One specific jurisdiction, gently paced
  standardspull sync --jurisdiction 49FCD4F36FEE4E67982D8E4EB6DACFC1 --delay 500ms

  # Small trial run
  standardspull sync --max-jurisdictions 2 --max-sets 5

  # Refetch everything, replacing existing files
  standardspull sync --overwrite

  # Watch progress in the interactive terminal UI
  standardspull sync --tui`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runSync(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)

	// Local flags for sync command
	syncCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for the archive (default: standards)")
	syncCmd.Flags().StringVar(&baseURL, "base-url", "", "catalog API base URL")
	syncCmd.Flags().DurationVar(&requestDelay, "delay", 150*time.Millisecond, "pause between consecutive set downloads")
	syncCmd.Flags().IntVar(&maxJurisdictions, "max-jurisdictions", 0, "stop after this many jurisdictions (0 = all)")
	syncCmd.Flags().IntVar(&maxSets, "max-sets", 0, "cap on sets fetched per jurisdiction (0 = all)")
	syncCmd.Flags().StringSliceVarP(&jurisdictionIDs, "jurisdiction", "j", nil, "only sync these jurisdiction IDs (repeatable)")
	syncCmd.Flags().BoolVar(&statesOnly, "states-only", false, "only sync jurisdictions of type \"state\"")
	syncCmd.Flags().BoolVar(&overwrite, "overwrite", false, "refetch sets whose output files already exist")
	syncCmd.Flags().BoolVar(&notify, "notify", false, "send a desktop notification when the run ends")
	syncCmd.Flags().BoolVar(&useTUI, "tui", false, "use interactive terminal UI with real-time progress")
}

func runSync(cmd *cobra.Command, args []string) {
	// Build flags map from command line; only values the user changed
	// should override the config file
	flags := make(map[string]interface{})
	if outputDir != "" {
		flags["output"] = outputDir
	}
	if baseURL != "" {
		flags["base-url"] = baseURL
	}
	if requestDelay != 150*time.Millisecond {
		flags["delay"] = requestDelay
	}
	if maxJurisdictions != 0 {
		flags["max-jurisdictions"] = maxJurisdictions
	}
	if maxSets != 0 {
		flags["max-sets"] = maxSets
	}
	if len(jurisdictionIDs) > 0 {
		flags["jurisdiction"] = jurisdictionIDs
	}
	if statesOnly {
		flags["states-only"] = true
	}
	if overwrite {
		flags["overwrite"] = true
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	// Load configuration
	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Initialize logger
	logger.Initialize(&cfg.Logging)
	logger.WithField("version", version).Info("standardspull starting")

	// Resolve the API key. The environment and config file are already
	// merged by config.Load; the stored credential is the last resort.
	if cfg.API.Key == "" {
		if manager, err := auth.NewManager(); err == nil {
			if cred, err := manager.Retrieve(); err == nil && cred != nil {
				cfg.API.Key = cred.APIKey
				logger.Info("Using stored API key")
				ui.PrintInfo("Using API key", auth.MaskKey(cred.APIKey))
			}
		}
	}

	if cfg.API.Key == "" {
		logger.Error("No API key found")
		ui.PrintError("No Common Standards Project API key found")
		auth.ShowQuickKeyGuide()
		os.Exit(2)
	}

	// Ctrl+C cancels between sets, never mid-write
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if useTUI {
		terminal := tui.NewTUI()

		// Run the syncer in a goroutine
		syncDone := make(chan error)
		go func() {
			s, err := syncer.New(cfg)
			if err != nil {
				syncDone <- err
				return
			}

			s.SetMonitor(terminal)
			s.SetNotifications(notify)

			_, err = s.Run(ctx)
			syncDone <- err
		}()

		// Run TUI in main thread
		tuiDone := make(chan error)
		go func() {
			tuiDone <- terminal.Start()
		}()

		// Wait for either to finish
		select {
		case err := <-syncDone:
			terminal.Stop()
			<-tuiDone // Wait for TUI to finish
			if err != nil {
				exitSync(err)
			}
		case err := <-tuiDone:
			if err != nil {
				logger.WithError(err).Error("Terminal UI failed")
				os.Exit(1)
			}
			// The user closed the TUI; cancel the run and wait for the
			// syncer to save its progress
			stop()
			if runErr := <-syncDone; runErr != nil {
				exitSync(runErr)
			}
		}

		logger.Info("Sync completed successfully")
	} else {
		s, err := syncer.New(cfg)
		if err != nil {
			logger.WithError(err).Error("Failed to initialize sync")
			ui.PrintError("Failed to initialize sync", err.Error())
			if errors.Is(err, errs.ErrMissingAPIKey) {
				os.Exit(2)
			}
			os.Exit(1)
		}
		s.SetNotifications(notify)

		result, err := s.Run(ctx)
		if err != nil {
			exitSync(err)
		}

		logger.WithFields(map[string]interface{}{
			"jurisdictions": result.Jurisdictions,
			"written":       result.SetsWritten,
			"skipped":       result.SetsSkipped,
			"failed":        result.SetsFailed,
		}).Info("Sync completed successfully")
	}
}

// exitSync terminates the process after a failed run. Interruption exits
// with 130 so shells see the conventional SIGINT status.
func exitSync(err error) {
	logger.WithError(err).Error("Sync failed")
	if errors.Is(err, errs.ErrInterrupted) {
		os.Exit(130)
	}
	ui.PrintError("SYNC FAILED", err.Error())
	os.Exit(1)
}
