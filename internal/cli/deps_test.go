package cli

import (
	"context"
	"testing"

	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/service"
)

func TestNewDeps(t *testing.T) {
	cfg := config.DefaultConfig()
	services := service.NewServicesWith(nil, goals.NewMemoryKV(), "", "", cfg, nil)

	deps := NewDeps(services, cfg)
	if deps == nil {
		t.Fatal("expected non-nil deps")
	}
	if deps.Services != services {
		t.Error("expected services to match")
	}
	if deps.Stdout == nil {
		t.Error("expected non-nil Stdout")
	}
	if deps.Stderr == nil {
		t.Error("expected non-nil Stderr")
	}
	if deps.Stdin == nil {
		t.Error("expected non-nil Stdin")
	}
	if deps.Exit == nil {
		t.Error("expected non-nil Exit")
	}
	if deps.JSON {
		t.Error("expected JSON output to be off by default")
	}
}

func TestDeps_Ctx(t *testing.T) {
	deps := &Deps{}
	if deps.Ctx() == nil {
		t.Fatal("Ctx() returned nil without a context")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	deps.Context = ctx
	if deps.Ctx().Err() == nil {
		t.Error("Ctx() did not return the configured context")
	}
}
