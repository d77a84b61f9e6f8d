package cmd

import (
	"context"
	"io"
	"os"

	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/logger"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/tui"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// LoadConfig resolves the config path and the effective configuration.
	LoadConfig func() (string, config.Config, error)
	// InitLogger installs the process logger and returns its close function.
	InitLogger func(opts logger.Options) (func() error, error)
	// NewServices builds the service layer for one command.
	NewServices func(ctx context.Context, configPath string, cfg config.Config, opts service.Options) (*service.Services, error)
	// RunTUI runs the interactive day screen until the user quits.
	RunTUI func(ctx context.Context, services *service.Services, cfg config.Config) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Exit:        os.Exit,
		LoadConfig:  service.LoadConfig,
		InitLogger:  logger.Init,
		NewServices: service.NewServices,
		RunTUI:      tui.Run,
	}
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
