package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the standards sync tool
type Config struct {
	// Catalog API settings
	API APIConfig `yaml:"api" json:"api"`

	// Retry policy for catalog requests
	Retry RetryConfig `yaml:"retry" json:"retry"`

	// Sync driver settings
	Sync SyncConfig `yaml:"sync" json:"sync"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL        string        `yaml:"base_url" json:"base_url"`
	Key            string        `yaml:"key" json:"key"`
	RequestTimeout time.Duration `yaml:"request_timeout" json:"request_timeout"`
}

// RetryConfig holds the retry policy for individual catalog requests
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
}

// SyncConfig holds bulk sync driver configuration
type SyncConfig struct {
	// RequestDelay is the fixed pause between consecutive catalog requests
	RequestDelay time.Duration `yaml:"request_delay" json:"request_delay"`
	// MaxJurisdictions caps how many jurisdictions are processed (0 = all)
	MaxJurisdictions int `yaml:"max_jurisdictions" json:"max_jurisdictions"`
	// MaxSetsPerJurisdiction caps sets fetched per jurisdiction (0 = all)
	MaxSetsPerJurisdiction int `yaml:"max_sets_per_jurisdiction" json:"max_sets_per_jurisdiction"`
	// JurisdictionIDs restricts the run to an explicit allow-list of ids
	JurisdictionIDs []string `yaml:"jurisdiction_ids" json:"jurisdiction_ids"`
	// StatesOnly restricts the run to jurisdictions of type "state"
	StatesOnly bool `yaml:"states_only" json:"states_only"`
	// Overwrite refetches sets whose output files already exist
	Overwrite bool `yaml:"overwrite" json:"overwrite"`
}

// OutputConfig holds output directory configuration
type OutputConfig struct {
	BaseDirectory string `yaml:"base_directory" json:"base_directory"`
	// PathLengthLimit is the threshold above which a computed path is
	// rejected in favor of the flat fallback location
	PathLengthLimit int `yaml:"path_length_limit" json:"path_length_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultBaseURL is the public Common Standards Project catalog endpoint
const DefaultBaseURL = "https://api.commonstandardsproject.com"

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			RequestTimeout: 30 * time.Second,
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BaseDelay:   1 * time.Second,
			MaxDelay:    30 * time.Second,
		},
		Sync: SyncConfig{
			RequestDelay:           150 * time.Millisecond,
			MaxJurisdictions:       0,
			MaxSetsPerJurisdiction: 0,
			StatesOnly:             false,
			Overwrite:              false,
		},
		Output: OutputConfig{
			BaseDirectory:   "standards",
			PathLengthLimit: 240,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Duration fields round-trip through YAML as strings ("150ms", "30s")
// rather than raw nanosecond integers, so config files stay editable by
// hand. Decoding seeds the intermediate struct with the current values,
// so keys absent from the file keep their defaults.

// MarshalYAML renders durations as strings
func (a APIConfig) MarshalYAML() (interface{}, error) {
	return apiConfigYAML{
		BaseURL:        a.BaseURL,
		Key:            a.Key,
		RequestTimeout: a.RequestTimeout.String(),
	}, nil
}

// UnmarshalYAML parses durations from strings
func (a *APIConfig) UnmarshalYAML(value *yaml.Node) error {
	raw := apiConfigYAML{
		BaseURL:        a.BaseURL,
		Key:            a.Key,
		RequestTimeout: a.RequestTimeout.String(),
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	timeout, err := time.ParseDuration(raw.RequestTimeout)
	if err != nil {
		return fmt.Errorf("invalid api.request_timeout: %w", err)
	}

	a.BaseURL = raw.BaseURL
	a.Key = raw.Key
	a.RequestTimeout = timeout
	return nil
}

type apiConfigYAML struct {
	BaseURL        string `yaml:"base_url"`
	Key            string `yaml:"key"`
	RequestTimeout string `yaml:"request_timeout"`
}

// MarshalYAML renders durations as strings
func (r RetryConfig) MarshalYAML() (interface{}, error) {
	return retryConfigYAML{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay.String(),
		MaxDelay:    r.MaxDelay.String(),
	}, nil
}

// UnmarshalYAML parses durations from strings
func (r *RetryConfig) UnmarshalYAML(value *yaml.Node) error {
	raw := retryConfigYAML{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay.String(),
		MaxDelay:    r.MaxDelay.String(),
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	baseDelay, err := time.ParseDuration(raw.BaseDelay)
	if err != nil {
		return fmt.Errorf("invalid retry.base_delay: %w", err)
	}
	maxDelay, err := time.ParseDuration(raw.MaxDelay)
	if err != nil {
		return fmt.Errorf("invalid retry.max_delay: %w", err)
	}

	r.MaxAttempts = raw.MaxAttempts
	r.BaseDelay = baseDelay
	r.MaxDelay = maxDelay
	return nil
}

type retryConfigYAML struct {
	MaxAttempts int    `yaml:"max_attempts"`
	BaseDelay   string `yaml:"base_delay"`
	MaxDelay    string `yaml:"max_delay"`
}

// MarshalYAML renders durations as strings
func (s SyncConfig) MarshalYAML() (interface{}, error) {
	return syncConfigYAML{
		RequestDelay:           s.RequestDelay.String(),
		MaxJurisdictions:       s.MaxJurisdictions,
		MaxSetsPerJurisdiction: s.MaxSetsPerJurisdiction,
		JurisdictionIDs:        s.JurisdictionIDs,
		StatesOnly:             s.StatesOnly,
		Overwrite:              s.Overwrite,
	}, nil
}

// UnmarshalYAML parses durations from strings
func (s *SyncConfig) UnmarshalYAML(value *yaml.Node) error {
	raw := syncConfigYAML{
		RequestDelay:           s.RequestDelay.String(),
		MaxJurisdictions:       s.MaxJurisdictions,
		MaxSetsPerJurisdiction: s.MaxSetsPerJurisdiction,
		JurisdictionIDs:        s.JurisdictionIDs,
		StatesOnly:             s.StatesOnly,
		Overwrite:              s.Overwrite,
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	delay, err := time.ParseDuration(raw.RequestDelay)
	if err != nil {
		return fmt.Errorf("invalid sync.request_delay: %w", err)
	}

	s.RequestDelay = delay
	s.MaxJurisdictions = raw.MaxJurisdictions
	s.MaxSetsPerJurisdiction = raw.MaxSetsPerJurisdiction
	s.JurisdictionIDs = raw.JurisdictionIDs
	s.StatesOnly = raw.StatesOnly
	s.Overwrite = raw.Overwrite
	return nil
}

type syncConfigYAML struct {
	RequestDelay           string   `yaml:"request_delay"`
	MaxJurisdictions       int      `yaml:"max_jurisdictions"`
	MaxSetsPerJurisdiction int      `yaml:"max_sets_per_jurisdiction"`
	JurisdictionIDs        []string `yaml:"jurisdiction_ids,omitempty"`
	StatesOnly             bool     `yaml:"states_only"`
	Overwrite              bool     `yaml:"overwrite"`
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if key := os.Getenv("STANDARDS_API_KEY"); key != "" {
		c.API.Key = key
	}
	if baseURL := os.Getenv("STANDARDS_API_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	if delay := os.Getenv("STANDARDS_REQUEST_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			c.Sync.RequestDelay = d
		}
	}

	if attempts := os.Getenv("STANDARDS_RETRY_ATTEMPTS"); attempts != "" {
		if val, err := strconv.Atoi(attempts); err == nil && val > 0 {
			c.Retry.MaxAttempts = val
		}
	}

	if outputDir := os.Getenv("STANDARDS_OUTPUT_DIR"); outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}

	if logLevel := os.Getenv("STANDARDS_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	locations := []string{
		".standardspull.yaml",
		".standardspull.yml",
		filepath.Join(os.Getenv("HOME"), ".config", "standardspull", "config.yaml"),
		filepath.Join(os.Getenv("HOME"), ".config", "standardspull", "config.yml"),
		filepath.Join(os.Getenv("HOME"), ".standardspull.yaml"),
		filepath.Join(os.Getenv("HOME"), ".standardspull.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid. The API key is deliberately
// not validated here: only the sync driver needs one, and it may come from
// the credential store rather than config.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("API base URL is required"))
	}
	if c.API.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request timeout must be positive"))
	}

	if c.Retry.MaxAttempts <= 0 {
		errs = append(errs, errors.New("retry attempts must be positive"))
	}
	if c.Retry.BaseDelay < 0 {
		errs = append(errs, errors.New("retry base delay cannot be negative"))
	}

	if c.Sync.RequestDelay < 0 {
		errs = append(errs, errors.New("request delay cannot be negative"))
	}
	if c.Sync.MaxJurisdictions < 0 {
		errs = append(errs, errors.New("max jurisdictions cannot be negative"))
	}
	if c.Sync.MaxSetsPerJurisdiction < 0 {
		errs = append(errs, errors.New("max sets per jurisdiction cannot be negative"))
	}

	if c.Output.BaseDirectory == "" {
		errs = append(errs, errors.New("output directory is required"))
	}
	if c.Output.PathLengthLimit <= 0 {
		errs = append(errs, errors.New("path length limit must be positive"))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in the map are applied, so callers should add entries
// for flags the user actually set.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if delay, ok := flags["delay"].(time.Duration); ok && delay >= 0 {
		c.Sync.RequestDelay = delay
	}
	if max, ok := flags["max-jurisdictions"].(int); ok && max >= 0 {
		c.Sync.MaxJurisdictions = max
	}
	if max, ok := flags["max-sets"].(int); ok && max >= 0 {
		c.Sync.MaxSetsPerJurisdiction = max
	}
	if ids, ok := flags["jurisdiction"].([]string); ok && len(ids) > 0 {
		c.Sync.JurisdictionIDs = ids
	}
	if statesOnly, ok := flags["states-only"].(bool); ok {
		c.Sync.StatesOnly = statesOnly
	}
	if overwrite, ok := flags["overwrite"].(bool); ok {
		c.Sync.Overwrite = overwrite
	}
	if outputDir, ok := flags["output"].(string); ok && outputDir != "" {
		c.Output.BaseDirectory = outputDir
	}
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// Try to load .env files (don't fail if they don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".env"))
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".standardspull.env"))

	// Start with defaults
	config := DefaultConfig()

	// Load from config file
	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	// Override with environment variables (includes values from .env)
	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Override with command line flags
	config.MergeCommandLineFlags(flags)

	// Validate final configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
