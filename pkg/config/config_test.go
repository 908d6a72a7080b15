package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.API.BaseURL != DefaultBaseURL {
		t.Errorf("Expected default base URL to be %s, got %s", DefaultBaseURL, config.API.BaseURL)
	}

	if config.API.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout to be 30s, got %v", config.API.RequestTimeout)
	}

	if config.Retry.MaxAttempts != 3 {
		t.Errorf("Expected default retry attempts to be 3, got %d", config.Retry.MaxAttempts)
	}

	if config.Sync.RequestDelay != 150*time.Millisecond {
		t.Errorf("Expected default request delay to be 150ms, got %v", config.Sync.RequestDelay)
	}

	if config.Output.BaseDirectory != "standards" {
		t.Errorf("Expected default output directory to be standards, got %s", config.Output.BaseDirectory)
	}

	if config.Output.PathLengthLimit != 240 {
		t.Errorf("Expected default path length limit to be 240, got %d", config.Output.PathLengthLimit)
	}
}

func TestLoadFromEnv(t *testing.T) {
	os.Setenv("STANDARDS_API_KEY", "test-api-key")
	os.Setenv("STANDARDS_API_BASE_URL", "http://localhost:8080")
	os.Setenv("STANDARDS_REQUEST_DELAY", "300ms")
	os.Setenv("STANDARDS_RETRY_ATTEMPTS", "5")
	os.Setenv("STANDARDS_OUTPUT_DIR", "/tmp/test-standards")
	os.Setenv("STANDARDS_LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("STANDARDS_API_KEY")
		os.Unsetenv("STANDARDS_API_BASE_URL")
		os.Unsetenv("STANDARDS_REQUEST_DELAY")
		os.Unsetenv("STANDARDS_RETRY_ATTEMPTS")
		os.Unsetenv("STANDARDS_OUTPUT_DIR")
		os.Unsetenv("STANDARDS_LOG_LEVEL")
	}()

	config := DefaultConfig()
	err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.API.Key != "test-api-key" {
		t.Errorf("Expected API key to be test-api-key, got %s", config.API.Key)
	}

	if config.API.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected base URL to be http://localhost:8080, got %s", config.API.BaseURL)
	}

	if config.Sync.RequestDelay != 300*time.Millisecond {
		t.Errorf("Expected request delay to be 300ms, got %v", config.Sync.RequestDelay)
	}

	if config.Retry.MaxAttempts != 5 {
		t.Errorf("Expected retry attempts to be 5, got %d", config.Retry.MaxAttempts)
	}

	if config.Output.BaseDirectory != "/tmp/test-standards" {
		t.Errorf("Expected output directory to be /tmp/test-standards, got %s", config.Output.BaseDirectory)
	}

	if config.Logging.Level != "debug" {
		t.Errorf("Expected log level to be debug, got %s", config.Logging.Level)
	}
}

func TestLoadFromEnvIgnoresInvalidValues(t *testing.T) {
	os.Setenv("STANDARDS_REQUEST_DELAY", "not-a-duration")
	os.Setenv("STANDARDS_RETRY_ATTEMPTS", "-2")

	defer func() {
		os.Unsetenv("STANDARDS_REQUEST_DELAY")
		os.Unsetenv("STANDARDS_RETRY_ATTEMPTS")
	}()

	config := DefaultConfig()
	if err := config.LoadFromEnv(); err != nil {
		t.Fatalf("Failed to load from environment: %v", err)
	}

	if config.Sync.RequestDelay != 150*time.Millisecond {
		t.Errorf("Expected unparseable delay to keep default, got %v", config.Sync.RequestDelay)
	}
	if config.Retry.MaxAttempts != 3 {
		t.Errorf("Expected negative attempts to keep default, got %d", config.Retry.MaxAttempts)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return DefaultConfig()
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(c *Config) {},
			wantError: false,
		},
		{
			name:      "missing base URL",
			mutate:    func(c *Config) { c.API.BaseURL = "" },
			wantError: true,
		},
		{
			name:      "zero request timeout",
			mutate:    func(c *Config) { c.API.RequestTimeout = 0 },
			wantError: true,
		},
		{
			name:      "zero retry attempts",
			mutate:    func(c *Config) { c.Retry.MaxAttempts = 0 },
			wantError: true,
		},
		{
			name:      "negative request delay",
			mutate:    func(c *Config) { c.Sync.RequestDelay = -time.Second },
			wantError: true,
		},
		{
			name:      "missing output directory",
			mutate:    func(c *Config) { c.Output.BaseDirectory = "" },
			wantError: true,
		},
		{
			name:      "zero path length limit",
			mutate:    func(c *Config) { c.Output.PathLengthLimit = 0 },
			wantError: true,
		},
		{
			name:      "invalid log level",
			mutate:    func(c *Config) { c.Logging.Level = "invalid" },
			wantError: true,
		},
		{
			name:      "missing API key is allowed",
			mutate:    func(c *Config) { c.API.Key = "" },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)

			err := config.Validate()
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestMergeCommandLineFlags(t *testing.T) {
	config := DefaultConfig()

	flags := map[string]interface{}{
		"delay":             500 * time.Millisecond,
		"max-jurisdictions": 2,
		"max-sets":          10,
		"jurisdiction":      []string{"ABC123", "DEF456"},
		"states-only":       true,
		"overwrite":         true,
		"output":            "/flag/standards",
		"base-url":          "http://localhost:9999",
		"log-level":         "error",
	}

	config.MergeCommandLineFlags(flags)

	if config.Sync.RequestDelay != 500*time.Millisecond {
		t.Errorf("Expected request delay to be 500ms, got %v", config.Sync.RequestDelay)
	}

	if config.Sync.MaxJurisdictions != 2 {
		t.Errorf("Expected max jurisdictions to be 2, got %d", config.Sync.MaxJurisdictions)
	}

	if config.Sync.MaxSetsPerJurisdiction != 10 {
		t.Errorf("Expected max sets to be 10, got %d", config.Sync.MaxSetsPerJurisdiction)
	}

	if len(config.Sync.JurisdictionIDs) != 2 || config.Sync.JurisdictionIDs[0] != "ABC123" {
		t.Errorf("Expected jurisdiction allow-list to be merged, got %v", config.Sync.JurisdictionIDs)
	}

	if !config.Sync.StatesOnly {
		t.Error("Expected states-only to be true")
	}

	if !config.Sync.Overwrite {
		t.Error("Expected overwrite to be true")
	}

	if config.Output.BaseDirectory != "/flag/standards" {
		t.Errorf("Expected output directory to be /flag/standards, got %s", config.Output.BaseDirectory)
	}

	if config.API.BaseURL != "http://localhost:9999" {
		t.Errorf("Expected base URL to be http://localhost:9999, got %s", config.API.BaseURL)
	}

	if config.Logging.Level != "error" {
		t.Errorf("Expected log level to be error, got %s", config.Logging.Level)
	}
}

func TestMergeCommandLineFlagsAbsentKeys(t *testing.T) {
	config := DefaultConfig()

	// An empty map leaves everything at defaults
	config.MergeCommandLineFlags(map[string]interface{}{})

	if config.Sync.RequestDelay != 150*time.Millisecond {
		t.Errorf("Expected request delay default, got %v", config.Sync.RequestDelay)
	}
	if config.Sync.Overwrite {
		t.Error("Expected overwrite default false")
	}
}

func TestSaveAndLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	config := DefaultConfig()
	config.API.BaseURL = "http://localhost:4000"
	config.Sync.RequestDelay = 250 * time.Millisecond
	config.Sync.StatesOnly = true

	err := config.Save(configPath)
	if err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loadedConfig := DefaultConfig()
	err = loadedConfig.LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loadedConfig.API.BaseURL != "http://localhost:4000" {
		t.Errorf("Expected loaded base URL to be http://localhost:4000, got %s", loadedConfig.API.BaseURL)
	}

	if loadedConfig.Sync.RequestDelay != 250*time.Millisecond {
		t.Errorf("Expected loaded request delay to be 250ms, got %v", loadedConfig.Sync.RequestDelay)
	}

	if !loadedConfig.Sync.StatesOnly {
		t.Error("Expected loaded states-only to be true")
	}
}

func TestLoadFromFileStringDurations(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `api:
  request_timeout: 45s
retry:
  base_delay: 2s
sync:
  request_delay: 300ms
  states_only: true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.API.RequestTimeout != 45*time.Second {
		t.Errorf("Expected request timeout 45s, got %v", config.API.RequestTimeout)
	}
	if config.API.BaseURL != DefaultBaseURL {
		t.Errorf("Expected absent base URL to keep default, got %s", config.API.BaseURL)
	}
	if config.Retry.BaseDelay != 2*time.Second {
		t.Errorf("Expected base delay 2s, got %v", config.Retry.BaseDelay)
	}
	if config.Retry.MaxDelay != 30*time.Second {
		t.Errorf("Expected absent max delay to keep default, got %v", config.Retry.MaxDelay)
	}
	if config.Sync.RequestDelay != 300*time.Millisecond {
		t.Errorf("Expected request delay 300ms, got %v", config.Sync.RequestDelay)
	}
	if !config.Sync.StatesOnly {
		t.Error("Expected states-only to be true")
	}
}

func TestLoadFromFileBadDuration(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "sync:\n  request_delay: quickly\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config := DefaultConfig()
	err := config.LoadFromFile(configPath)
	if err == nil {
		t.Fatal("Expected error for unparseable duration")
	}
	if !strings.Contains(err.Error(), "sync.request_delay") {
		t.Errorf("Expected error to name the field, got %v", err)
	}
}

func TestLoadFromFileMissingIsNotError(t *testing.T) {
	config := DefaultConfig()

	// A nonexistent explicit path is an error
	if err := config.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for explicit missing config path")
	}

	// No path at all falls back to discovery and is fine when nothing exists
	if err := config.LoadFromFile(""); err != nil {
		t.Errorf("Expected no error when no config file exists, got %v", err)
	}
}

func TestLoadFromFileInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(configPath, []byte("api: [not closed"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	config := DefaultConfig()
	if err := config.LoadFromFile(configPath); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
