package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"standardspull/pkg/ui"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "standardspull",
	Short: "Mirror the Common Standards Project catalog to local JSON files",
	Long: `standardspull bulk-downloads educational standard sets from the
Common Standards Project catalog and organizes them on disk by
jurisdiction, subject and grade.

A persisted path index maps every set ID to the file that holds it, so
interrupted runs resume where they left off, and a verification pass can
reconcile the archive against the saved jurisdiction listings.

Features:
  - Secure API key storage using the system keychain
  - Sequential, rate-limited fetching with automatic retry
  - Path-length fallback so every record lands somewhere addressable
  - Resume after interruption by skipping files that already exist
  - Read-only verification of archive coverage`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set quiet mode if requested or log level is error
		if quiet || logLevel == "error" {
			ui.SetQuietMode(true)
		}

		// Don't show the logo for plumbing commands, and keep the verify
		// report parseable on stdout
		switch cmd.Name() {
		case "version", "help", "completion", "verify":
		default:
			ui.PrintLogo()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.standardspull.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except errors")

	// Version template
	rootCmd.SetVersionTemplate(`standardspull {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
