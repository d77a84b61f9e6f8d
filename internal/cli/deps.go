package cli

import (
	"context"
	"io"
	"os"

	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services
	Services *service.Services
	Config   config.Config

	// Context bounds backend calls; nil means context.Background().
	Context context.Context
	// JSON switches read commands to machine-readable output.
	JSON bool
}

// NewDeps creates a new Deps with the given services
func NewDeps(services *service.Services, cfg config.Config) *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: services,
		Config:   cfg,
	}
}

// Ctx returns the context for backend calls.
func (d *Deps) Ctx() context.Context {
	if d.Context == nil {
		return context.Background()
	}
	return d.Context
}
