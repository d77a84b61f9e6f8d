package handlers

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JoacoWn/FoodScan/internal/cli"
	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/logger"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// stubBackend is an in-memory service.Backend.
type stubBackend struct {
	mu         sync.Mutex
	entries    []food.Entry
	listErr    error
	deleteErr  error
	result     *food.AnalysisResult
	analyzeErr error
	deleted    []string
	uploads    []string
}

func (b *stubBackend) ListHistory(ctx context.Context) ([]food.Entry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.listErr != nil {
		return nil, b.listErr
	}
	return append([]food.Entry(nil), b.entries...), nil
}

func (b *stubBackend) DeleteEntry(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *stubBackend) AnalyzeImage(ctx context.Context, image io.Reader, filename, mealType string) (*food.AnalysisResult, error) {
	if _, err := io.ReadAll(image); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads = append(b.uploads, filename+":"+mealType)
	if b.analyzeErr != nil {
		return nil, b.analyzeErr
	}
	return b.result, nil
}

// testDate is the day most fixtures are logged on.
var testDate = time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

func sampleEntries() []food.Entry {
	return []food.Entry{
		{ID: "a1", Timestamp: "2024-06-04T21:00:00.000000", MealType: "cena", Name: "Sopa", Nutrients: food.Nutrients{Calories: 300, Protein: 12, Fat: 8, Carbs: 30}},
		{ID: "a2", Timestamp: "2024-06-04T08:00:00.000000", MealType: "desayuno", Name: "Tostadas", Nutrients: food.Nutrients{Calories: 500, Protein: 10, Fat: 20, Carbs: 60},
			Items: []food.FoodItem{{Name: "Pan", Grams: 60, Nutrients: food.Nutrients{Calories: 160}, Estimated: true}}},
		{ID: "a3", Timestamp: "2024-06-04T13:00:00.000000", MealType: "almuerzo", Name: "Pasta", Nutrients: food.Nutrients{Calories: 400, Protein: 15, Fat: 10, Carbs: 70}},
		{ID: "b1", Timestamp: "2024-06-03T20:00:00.000000", MealType: "cena", Name: "Pizza", Nutrients: food.Nutrients{Calories: 900}},
	}
}

func setupTestDeps(t *testing.T) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int) {
	t.Helper()
	deps, stdout, stderr, exitCode, _ := setupTestDepsWith(t, &stubBackend{entries: sampleEntries()})
	return deps, stdout, stderr, exitCode
}

// setupTestDepsWith wires deps around backend with UTC day boundaries, an
// in-memory goal store and paths in a temp dir.
func setupTestDepsWith(t *testing.T, backend *stubBackend) (*cli.Deps, *bytes.Buffer, *bytes.Buffer, *int, *stubBackend) {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"

	services := service.NewServicesWith(backend, goals.NewMemoryKV(),
		filepath.Join(tmpDir, "history.jsonl"), filepath.Join(tmpDir, "config.toml"), cfg, logger.Discard())
	t.Cleanup(func() { _ = services.Close() })

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	exitCode := 0

	deps := &cli.Deps{
		Stdout:   stdout,
		Stderr:   stderr,
		Stdin:    strings.NewReader(""),
		Exit:     func(code int) { exitCode = code },
		Services: services,
		Config:   cfg,
	}

	return deps, stdout, stderr, &exitCode, backend
}

// cachedEntries returns the entries stored in the history cache at path.
func cachedEntries(path string) ([]food.Entry, error) {
	result, err := storage.ReadEntriesWithWarnings(path)
	return result.Entries, err
}
