package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JoacoWn/FoodScan/internal/api"
	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/history"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	History *HistoryService
	Goals   *GoalsService
	Analyze *AnalyzeService
	Config  *ConfigService
}

// Options adjust NewServices. The zero value means production defaults.
type Options struct {
	// BaseURL overrides the configured backend URL.
	BaseURL string
	// Offline makes history reads use the local cache.
	Offline bool
	Logger  *slog.Logger
}

// LoadConfig resolves the config file path and loads the effective
// configuration: .env, then the TOML file, then FOODSCAN_* variables.
func LoadConfig() (string, config.Config, error) {
	if err := config.LoadEnvFile(".env"); err != nil {
		return "", config.Config{}, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return "", config.Config{}, fmt.Errorf("failed to determine config location: %w", err)
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return configPath, config.Config{}, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return configPath, config.Config{}, err
	}
	return configPath, cfg, nil
}

// NewServices creates a new Services instance with default paths: the real
// backend client, the SQLite goal store and the JSONL history cache.
func NewServices(ctx context.Context, configPath string, cfg config.Config, opts Options) (*Services, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
		cfg.Normalize()
		if err := config.ValidateBaseURL(cfg.BaseURL); err != nil {
			return nil, err
		}
	}

	client, err := api.NewClient(cfg.BaseURL,
		api.WithHTTPTimeout(cfg.Timeout()),
		api.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	cachePath, err := storage.GetCachePath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine cache location: %w", err)
	}

	goalsPath, err := cfg.GoalsDBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine goals database location: %w", err)
	}
	kv, err := goals.OpenSQLite(ctx, goalsPath, log)
	if err != nil {
		return nil, err
	}

	services := NewServicesWith(client, kv, cachePath, configPath, cfg, log)
	services.History.SetOffline(opts.Offline)
	return services, nil
}

// NewServicesWith wires services around the given backend and goal store
// (useful for testing).
func NewServicesWith(backend Backend, kv goals.KV, cachePath, configPath string, cfg config.Config, log *slog.Logger) *Services {
	if log == nil {
		log = slog.Default()
	}

	goalsService := NewGoalsService(goals.NewRepository(kv, log))
	agg := history.NewAggregator(cfg.Location(), log)

	return &Services{
		History: NewHistoryService(backend, cachePath, agg, goalsService, log),
		Goals:   goalsService,
		Analyze: NewAnalyzeService(backend, log),
		Config:  NewConfigService(configPath, cfg),
	}
}

// Close releases the goal store.
func (s *Services) Close() error {
	if s == nil || s.Goals == nil {
		return nil
	}
	return s.Goals.Close()
}

// IsUserError reports whether err stems from invalid user input rather than
// a system failure.
func IsUserError(err error) bool {
	var ve *goals.ValidationError
	return errors.As(err, &ve) ||
		errors.Is(err, ErrImageRequired) ||
		errors.Is(err, ErrMealTypeRequired) ||
		errors.Is(err, ErrUnknownMealType) ||
		errors.Is(err, ErrUnsupportedImage)
}
