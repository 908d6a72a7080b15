package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"standardspull/pkg/auth"
	"standardspull/pkg/config"
	"standardspull/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage standardspull configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables (STANDARDS_*)
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create an example configuration file with all available options.

The file will be created in the current directory as 'standardspull.yaml'
unless a different path is specified with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the current configuration including values from all sources:
  - Command line flags
  - Environment variables
  - Configuration file
  - Default values

The API key is masked for security.`,
	Run: runConfigShow,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long: `Validate a configuration file for syntax errors and invalid values.

This command checks:
  - YAML syntax
  - Value types and ranges
  - Path accessibility`,
	Run: runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	// Determine config file path
	configPath := configFile
	if configPath == "" {
		configPath = "standardspull.yaml"
	}

	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	// Create example configuration
	exampleConfig := `# standardspull configuration file
#
# This file contains all available configuration options.
# You can also use environment variables: STANDARDS_API_KEY,
# STANDARDS_API_BASE_URL, STANDARDS_REQUEST_DELAY, STANDARDS_RETRY_ATTEMPTS,
# STANDARDS_OUTPUT_DIR, STANDARDS_LOG_LEVEL.
#
# Durations are Go duration strings: "150ms", "2s", "1m30s".

# Catalog API settings
api:
  # Base URL of the Common Standards Project catalog
  base_url: "https://api.commonstandardsproject.com"

  # API key, sent in the Api-Key header (optional here)
  # Prefer 'standardspull auth login' or the STANDARDS_API_KEY variable
  # over writing the key into this file.
  key: ""

  # Timeout for a single catalog request
  request_timeout: "30s"

# Retry policy for individual catalog requests
retry:
  # Maximum number of attempts per request
  max_attempts: 3

  # Backoff grows linearly: base_delay * attempt number
  base_delay: "1s"

  # Ceiling on a single backoff sleep
  max_delay: "30s"

# Bulk sync driver settings
sync:
  # Fixed pause between consecutive standard set downloads
  request_delay: "150ms"

  # Stop after this many jurisdictions (0 = all)
  max_jurisdictions: 0

  # Cap on sets fetched per jurisdiction (0 = all)
  max_sets_per_jurisdiction: 0

  # Only sync these jurisdiction IDs (empty = all)
  # jurisdiction_ids:
  #   - "49FCD4F36FEE4E67982D8E4EB6DACFC1"

  # Only sync jurisdictions of type "state"
  states_only: false

  # Refetch sets whose output files already exist
  overwrite: false

# Output settings
output:
  # Root directory of the archive
  base_directory: "standards"

  # Paths longer than this use the flat fallback location instead
  path_length_limit: 240

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: "info"

  # Log file path (optional)
  # Leave empty to log to the console only
  file: ""
`

	// Write configuration file
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0644); err != nil {
		ui.PrintError("Failed to create configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Adjust the configuration file to taste")
	fmt.Println("2. Run 'standardspull config validate' to check it")
	fmt.Println("3. Store your API key with 'standardspull auth login'")
	fmt.Println("4. Start downloading with 'standardspull sync'")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Create a sanitized version for display
	displayCfg := *cfg
	if displayCfg.API.Key != "" {
		displayCfg.API.Key = auth.MaskKey(displayCfg.API.Key)
	}

	// Convert to YAML for display
	data, err := yaml.Marshal(&displayCfg)
	if err != nil {
		ui.PrintError("Failed to format configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current Configuration")
	fmt.Println()
	fmt.Print(string(data))

	// Show configuration sources
	fmt.Println("\nConfiguration sources (in order of priority):")
	fmt.Println("1. Command line flags")
	fmt.Println("2. Environment variables (STANDARDS_*)")
	if configFile != "" {
		fmt.Printf("3. Configuration file: %s\n", configFile)
	} else {
		fmt.Println("3. Configuration file: (searched in default locations)")
	}
	fmt.Println("4. Default values")
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	// Check if config file is specified
	if configFile == "" {
		// Try to find config file in common locations
		possiblePaths := []string{
			"standardspull.yaml",
			"standardspull.yml",
			".standardspull.yaml",
			".standardspull.yml",
			filepath.Join(os.Getenv("HOME"), ".standardspull.yaml"),
			filepath.Join(os.Getenv("HOME"), ".config", "standardspull", "config.yaml"),
		}

		for _, path := range possiblePaths {
			if _, err := os.Stat(path); err == nil {
				configFile = path
				break
			}
		}

		if configFile == "" {
			ui.PrintError("No configuration file found", "specify a file with --config flag")
			os.Exit(1)
		}
	}

	ui.PrintInfo("Validating configuration", configFile)

	// Try to load and validate configuration
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	// Perform additional validation checks
	warnings := []string{}
	errors := []string{}

	// Check credentials
	if cfg.API.Key == "" {
		warnings = append(warnings, "no API key in config; sync will use the stored credential or STANDARDS_API_KEY")
	}

	// Check paths
	if cfg.Output.BaseDirectory != "" {
		if err := os.MkdirAll(cfg.Output.BaseDirectory, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create output directory: %v", err))
		}
	}

	// Check logging file path
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		if err := os.MkdirAll(dir, 0755); err != nil {
			errors = append(errors, fmt.Sprintf("cannot create log directory: %v", err))
		}
	}

	// Check value ranges
	if cfg.Retry.MaxAttempts > 10 {
		warnings = append(warnings, "more than 10 retry attempts will make failing runs very slow")
	}
	if cfg.Sync.RequestDelay == 0 {
		warnings = append(warnings, "request_delay of 0 sends requests as fast as possible; be polite to the catalog")
	}
	if cfg.Output.PathLengthLimit > 4096 {
		warnings = append(warnings, "path_length_limit above 4096 disables the fallback on most filesystems")
	}

	// Display results
	if len(errors) > 0 {
		ui.PrintError("Configuration has errors:")
		for _, err := range errors {
			fmt.Printf("  - %s\n", err)
		}
		os.Exit(1)
	}

	if len(warnings) > 0 {
		ui.PrintWarning("Configuration warnings:")
		for _, warn := range warnings {
			fmt.Printf("  - %s\n", warn)
		}
		fmt.Println()
	}

	ui.PrintSuccess("Configuration is valid")

	// Show summary
	fmt.Println("\nConfiguration summary:")
	fmt.Printf("  Base URL: %s\n", cfg.API.BaseURL)
	fmt.Printf("  Output directory: %s\n", cfg.Output.BaseDirectory)
	fmt.Printf("  Request delay: %s\n", cfg.Sync.RequestDelay)
	fmt.Printf("  Max retries: %d\n", cfg.Retry.MaxAttempts)
	fmt.Printf("  Path length limit: %d\n", cfg.Output.PathLengthLimit)
	fmt.Printf("  Log level: %s\n", cfg.Logging.Level)
}
