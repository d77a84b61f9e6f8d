package service

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"

	"github.com/JoacoWn/FoodScan/internal/config"
	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/logger"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// fakeBackend is an in-memory Backend.
type fakeBackend struct {
	mu        sync.Mutex
	entries   []food.Entry
	listErr   error
	deleteErr error
	result    *food.AnalysisResult
	analyzeFn func(filename, mealType string, data []byte) error

	listCalls int
	deleted   []string
	uploaded  []string
}

func (f *fakeBackend) ListHistory(ctx context.Context) ([]food.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]food.Entry(nil), f.entries...), nil
}

func (f *fakeBackend) DeleteEntry(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.entries[:0]
	for _, e := range f.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeBackend) AnalyzeImage(ctx context.Context, image io.Reader, filename, mealType string) (*food.AnalysisResult, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded = append(f.uploaded, filename+":"+mealType)
	if f.analyzeFn != nil {
		if err := f.analyzeFn(filename, mealType, data); err != nil {
			return nil, err
		}
	}
	return f.result, nil
}

func testEntries() []food.Entry {
	return []food.Entry{
		{ID: "1", Timestamp: "2024-06-04T08:00:00.000000", MealType: "desayuno", Name: "Tostadas", Nutrients: food.Nutrients{Calories: 500, Protein: 10, Fat: 20, Carbs: 60}},
		{ID: "2", Timestamp: "2024-06-04T13:00:00.000000", MealType: "almuerzo", Name: "Pasta", Nutrients: food.Nutrients{Calories: 400, Protein: 15, Fat: 10, Carbs: 70}},
		{ID: "3", Timestamp: "2024-06-04T21:00:00.000000", MealType: "cena", Name: "Sopa", Nutrients: food.Nutrients{Calories: 300, Protein: 12, Fat: 8, Carbs: 30}},
		{ID: "4", Timestamp: "2024-06-03T20:00:00.000000", MealType: "cena", Name: "Pizza", Nutrients: food.Nutrients{Calories: 900}},
	}
}

// newTestServices wires Services around a fake backend and in-memory goals,
// with UTC day boundaries and the cache in a temp dir.
func newTestServices(t *testing.T, backend *fakeBackend) *Services {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	s := NewServicesWith(backend, goals.NewMemoryKV(), filepath.Join(dir, "history.jsonl"), filepath.Join(dir, "config.toml"), cfg, logger.Discard())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// cachedEntries returns the entries stored in the history cache at path.
func cachedEntries(path string) ([]food.Entry, error) {
	result, err := storage.ReadEntriesWithWarnings(path)
	return result.Entries, err
}
