package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/JoacoWn/FoodScan/internal/osutil"
)

const (
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// GoalsDBFile is the default goals database file name
	GoalsDBFile = "goals.db"
	// EnvPrefix prefixes every environment override
	EnvPrefix = "FOODSCAN_"
)

var (
	validLogLevels = []string{"debug", "info", "warn", "error"}
	validThemes    = []string{"default", "mono"}
)

// Config represents the application configuration
type Config struct {
	// BaseURL is the FoodScan backend root, e.g. "http://192.168.1.10:5000/"
	BaseURL string `toml:"base_url"`
	// RequestTimeout bounds every backend call (Go duration, e.g. "30s")
	RequestTimeout string `toml:"timeout"`
	// Timezone is the reference zone for grouping entries by day (IANA name or "Local")
	Timezone string `toml:"timezone"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `toml:"log_level"`
	// LogFile, when set, receives JSON logs in addition to stderr
	LogFile string `toml:"log_file"`
	// SentryDSN, when set, reports error logs to Sentry
	SentryDSN string `toml:"sentry_dsn"`
	// GoalsDB is the SQLite file holding nutrition goals
	GoalsDB string `toml:"goals_db"`
	// Theme selects the TUI palette (default or mono)
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with sensible defaults.
// - base_url: "http://localhost:5000/" (the Flask backend's default port)
// - timeout: "30s"
// - timezone: "Local" (use system local timezone)
// - log_level: "warn"
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:5000/",
		RequestTimeout: "30s",
		Timezone:       "Local",
		LogLevel:       "warn",
		Theme:          "default",
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	return osutil.AppFile(ConfigFile)
}

// Load reads the config file at path, merges it over the defaults, and
// normalizes and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads the config file if it exists and returns the
// defaults if it does not. Other errors (permissions, parse failures) are
// returned.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return Config{}, fmt.Errorf("failed to access config file: %w", err)
	}
	return Load(path)
}

// LoadEnvFile loads a .env file into the process environment. A missing
// file is not an error; variables already set are not overwritten.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FOODSCAN_* variables found through lookup
// (os.LookupEnv in production), then normalizes and validates.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"BASE_URL", &c.BaseURL},
		{"TIMEOUT", &c.RequestTimeout},
		{"TIMEZONE", &c.Timezone},
		{"LOG_LEVEL", &c.LogLevel},
		{"LOG_FILE", &c.LogFile},
		{"SENTRY_DSN", &c.SentryDSN},
		{"GOALS_DB", &c.GoalsDB},
	}
	for _, o := range overrides {
		if v, ok := lookup(EnvPrefix + o.name); ok && v != "" {
			*o.dst = v
		}
	}

	c.Normalize()
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid environment override: %w", err)
	}
	return nil
}

// Normalize trims values, lower-cases enumerations and ensures the base URL
// ends with a slash.
func (c *Config) Normalize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/") {
		c.BaseURL += "/"
	}
	c.RequestTimeout = strings.TrimSpace(c.RequestTimeout)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFile = strings.TrimSpace(c.LogFile)
	c.SentryDSN = strings.TrimSpace(c.SentryDSN)
	c.GoalsDB = strings.TrimSpace(c.GoalsDB)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	if c.Theme == "" {
		c.Theme = "default"
	}
}

// Validate checks that the configuration values are valid.
func (c Config) Validate() error {
	if err := ValidateBaseURL(c.BaseURL); err != nil {
		return err
	}

	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q: must be a positive duration such as \"30s\"", c.RequestTimeout)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	if !contains(validLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	if !contains(validThemes, c.Theme) {
		return fmt.Errorf("invalid theme %q: must be one of %s", c.Theme, strings.Join(validThemes, ", "))
	}
	return nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid base_url %q: must be an absolute http or https URL", raw)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Location returns the configured reference timezone, falling back to
// time.Local if it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Timeout returns the request timeout, falling back to 30s.
func (c Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// GoalsDBPath returns the goals database path, defaulting to goals.db in
// the application directory.
func (c Config) GoalsDBPath() (string, error) {
	if c.GoalsDB != "" {
		return c.GoalsDB, nil
	}
	return osutil.AppFile(GoalsDBFile)
}

// Save writes c to path as TOML, creating the parent directory. The file is
// written to a temp file and renamed into place.
func Save(path string, c Config) error {
	if err := osutil.Provider.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# foodscan configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0644); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to replace config file: %w", err)
	}
	return nil
}

// GenerateSampleConfig returns a commented sample configuration file.
func GenerateSampleConfig() string {
	return `# foodscan configuration file
# Every value is optional; the commented value is the default.
# Environment variables FOODSCAN_BASE_URL, FOODSCAN_TIMEOUT, FOODSCAN_TIMEZONE,
# FOODSCAN_LOG_LEVEL, FOODSCAN_LOG_FILE, FOODSCAN_SENTRY_DSN and
# FOODSCAN_GOALS_DB override the file, and a .env file in the working
# directory is read first.

# FoodScan backend root URL (the Flask server serving /analizar and /historial)
# base_url = "http://localhost:5000/"

# Timeout for every backend request
# timeout = "30s"

# Timezone used to decide which day an entry belongs to
# Use "Local" for the system timezone, or an IANA name such as
# "America/Argentina/Buenos_Aires", "America/New_York", "Europe/London", "Asia/Tokyo"
# timezone = "Local"

# Log level: debug, info, warn or error
# log_level = "warn"

# Also write JSON logs to this file
# log_file = "/tmp/foodscan.log"

# Report errors to Sentry
# sentry_dsn = ""

# SQLite file holding your nutrition goals (default: goals.db next to this file)
# goals_db = ""

# TUI color theme: default or mono
# theme = "default"
`
}
