package service

import (
	"fmt"
	"os"

	"github.com/JoacoWn/FoodScan/internal/config"
)

// ConfigService provides operations for managing configuration
type ConfigService struct {
	configPath string
	config     config.Config
}

// NewConfigService creates a new ConfigService
func NewConfigService(configPath string, cfg config.Config) *ConfigService {
	return &ConfigService{
		configPath: configPath,
		config:     cfg,
	}
}

// Get returns the current configuration
func (s *ConfigService) Get() config.Config {
	return s.config
}

// GetPath returns the path to the config file
func (s *ConfigService) GetPath() string {
	return s.configPath
}

// Exists checks if the config file exists
func (s *ConfigService) Exists() bool {
	_, err := os.Stat(s.configPath)
	return err == nil
}

// Update updates the configuration with new values
func (s *ConfigService) Update(cfg config.Config) error {
	// Normalize and validate
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(s.configPath, cfg); err != nil {
		return err
	}

	// Update in-memory config
	s.config = cfg

	return nil
}

// SetBaseURL validates and persists a new backend URL. Other settings are
// taken from the file on disk so environment overrides are not written back.
func (s *ConfigService) SetBaseURL(raw string) (string, error) {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return "", fmt.Errorf("failed to load config: %w", err)
	}
	cfg.BaseURL = raw
	if err := s.Update(cfg); err != nil {
		return "", err
	}
	return s.config.BaseURL, nil
}

// SetTheme persists the TUI theme, keeping the rest of the file as is.
func (s *ConfigService) SetTheme(name string) error {
	cfg, err := config.LoadOrDefault(s.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Theme = name
	if err := s.Update(cfg); err != nil {
		return err
	}
	return nil
}

// Init creates a sample config file
func (s *ConfigService) Init() error {
	// Check if file already exists
	if s.Exists() {
		return fmt.Errorf("config file already exists at %s", s.configPath)
	}

	// Write sample config
	sample := config.GenerateSampleConfig()
	if err := os.WriteFile(s.configPath, []byte(sample), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
