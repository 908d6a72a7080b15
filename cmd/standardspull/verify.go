package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"standardspull/pkg/config"
	errs "standardspull/pkg/errors"
	"standardspull/pkg/logger"
	"standardspull/pkg/pathsafe"
	"standardspull/pkg/ui"
	"standardspull/pkg/verify"
)

var verifyOutputDir string

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile the path index against the saved jurisdiction listings",
	Long: `Compare the persisted path index with the set IDs found in the saved
per-jurisdiction listing files and report coverage.

The check is read-only: it never repairs the index and never touches the
network. Run it after a sync to confirm every listed standard set was
actually saved, and to see how often the path-length fallback fired.`,
	Example: `  # Verify the default archive directory
  standardspull verify

  # Verify a custom archive location
  standardspull verify --output /data/standards`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runVerify(cmd, args)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVarP(&verifyOutputDir, "output", "o", "", "archive directory to verify (default: standards)")
}

func runVerify(cmd *cobra.Command, args []string) {
	flags := make(map[string]interface{})
	if verifyOutputDir != "" {
		flags["output"] = verifyOutputDir
	}
	if logLevel != "info" {
		flags["log-level"] = logLevel
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	logger.Initialize(&cfg.Logging)

	layout := pathsafe.NewLayout(cfg.Output.BaseDirectory)
	if cfg.Output.PathLengthLimit > 0 {
		layout.MaxPathLen = cfg.Output.PathLengthLimit
	}

	report, err := verify.Run(layout)
	if err != nil {
		if errors.Is(err, errs.ErrNoPathIndex) {
			ui.PrintError("No path index found", "run 'standardspull sync' first")
			os.Exit(2)
		}
		ui.PrintError("Verification failed", err.Error())
		os.Exit(1)
	}

	report.Render(os.Stdout)
}
