package service

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/JoacoWn/FoodScan/internal/api"
)

var june4 = time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

func TestHistoryService_Day(t *testing.T) {
	backend := &fakeBackend{entries: testEntries()}
	s := newTestServices(t, backend)

	view, err := s.History.Day(context.Background(), june4)
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}

	if view.Summary.Totals.Calories != 1200 {
		t.Errorf("Totals.Calories = %v, expected 1200", view.Summary.Totals.Calories)
	}
	if len(view.Summary.Sections) != 3 {
		t.Errorf("len(Sections) = %d, expected 3", len(view.Summary.Sections))
	}
	if view.Progress.Calories.Remaining != 800 || view.Progress.Calories.Percent != 60 {
		t.Errorf("calorie progress = %+v", view.Progress.Calories)
	}
	if view.Source != "backend" {
		t.Errorf("Source = %q", view.Source)
	}
}

func TestHistoryService_FetchWritesCache(t *testing.T) {
	backend := &fakeBackend{entries: testEntries()}
	s := newTestServices(t, backend)

	if _, err := s.History.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}

	path, health, err := s.History.CacheStatus()
	if err != nil {
		t.Fatalf("CacheStatus() error: %v", err)
	}
	if !health.Exists || health.ValidEntries != 4 {
		t.Errorf("cache %s health = %+v", path, health)
	}
}

func TestHistoryService_Offline(t *testing.T) {
	backend := &fakeBackend{entries: testEntries()}
	s := newTestServices(t, backend)

	s.History.SetOffline(true)
	if _, err := s.History.Fetch(context.Background()); !errors.Is(err, ErrNoCache) {
		t.Fatalf("Fetch() offline without cache = %v, expected ErrNoCache", err)
	}

	// Populate the cache online, then break the backend.
	s.History.SetOffline(false)
	if _, err := s.History.Fetch(context.Background()); err != nil {
		t.Fatal(err)
	}
	backend.listErr = &api.Error{Kind: api.KindTransport, Op: "GET /historial"}
	s.History.SetOffline(true)

	view, err := s.History.Day(context.Background(), june4)
	if err != nil {
		t.Fatalf("Day() offline error: %v", err)
	}
	if view.Source != "cache" || view.Summary.Totals.Calories != 1200 {
		t.Errorf("offline view = source %q, %v kcal", view.Source, view.Summary.Totals.Calories)
	}
	if backend.listCalls != 1 {
		t.Errorf("backend called %d times, expected 1", backend.listCalls)
	}
}

func TestHistoryService_OfflineCorruptCache(t *testing.T) {
	s := newTestServices(t, &fakeBackend{})
	path, _, _ := s.History.CacheStatus()
	content := `{"_id":"1","timestamp":"2024-06-04T08:00:00","meal_type":"desayuno","calorias_totales":350}
not json
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s.History.SetOffline(true)
	view, err := s.History.Day(context.Background(), june4)
	if err != nil {
		t.Fatalf("Day() error: %v", err)
	}
	if len(view.Warnings) != 1 || view.Summary.Totals.Calories != 350 {
		t.Errorf("warnings = %d, calories = %v", len(view.Warnings), view.Summary.Totals.Calories)
	}
}

func TestHistoryService_FetchError(t *testing.T) {
	backend := &fakeBackend{listErr: &api.Error{Kind: api.KindStatus, StatusCode: 500, Op: "GET /historial"}}
	s := newTestServices(t, backend)

	_, err := s.History.Day(context.Background(), june4)
	if !errors.Is(err, api.ErrStatus) {
		t.Errorf("Day() error = %v, expected api.ErrStatus", err)
	}
}

func TestHistoryService_Days(t *testing.T) {
	s := newTestServices(t, &fakeBackend{entries: testEntries()})

	res, err := s.History.Days(context.Background())
	if err != nil {
		t.Fatalf("Days() error: %v", err)
	}
	if len(res.Days) != 2 {
		t.Fatalf("len(Days) = %d, expected 2", len(res.Days))
	}
	if !res.Days[0].Date.Equal(june4) || res.Days[0].Entries != 3 {
		t.Errorf("Days[0] = %+v", res.Days[0])
	}
}

func TestHistoryService_Delete(t *testing.T) {
	backend := &fakeBackend{entries: testEntries()}
	s := newTestServices(t, backend)
	ctx := context.Background()

	if _, err := s.History.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.History.Delete(ctx, "2"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "2" {
		t.Errorf("backend deleted = %v", backend.deleted)
	}

	path, _, _ := s.History.CacheStatus()
	cached, _ := cachedEntries(path)
	for _, e := range cached {
		if e.ID == "2" {
			t.Error("deleted entry still in cache")
		}
	}
}

func TestHistoryService_DeleteNotFoundLeavesCache(t *testing.T) {
	backend := &fakeBackend{entries: testEntries()}
	s := newTestServices(t, backend)
	ctx := context.Background()

	if _, err := s.History.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	backend.deleteErr = &api.Error{Kind: api.KindStatus, StatusCode: 404, Op: "DELETE /historial/nope"}

	err := s.History.Delete(ctx, "nope")
	if !errors.Is(err, api.ErrNotFound) {
		t.Fatalf("Delete() error = %v, expected api.ErrNotFound", err)
	}

	path, _, _ := s.History.CacheStatus()
	cached, _ := cachedEntries(path)
	if len(cached) != 4 {
		t.Errorf("cache has %d entries after failed delete, expected 4", len(cached))
	}
}

func TestHistoryService_DeleteGuards(t *testing.T) {
	s := newTestServices(t, &fakeBackend{})

	if err := s.History.Delete(context.Background(), ""); !errors.Is(err, ErrEntryIDRequired) {
		t.Errorf("Delete(\"\") = %v", err)
	}
	s.History.SetOffline(true)
	if err := s.History.Delete(context.Background(), "x"); !errors.Is(err, ErrOfflineDelete) {
		t.Errorf("Delete() offline = %v", err)
	}
}

func TestHistoryService_Lookup(t *testing.T) {
	s := newTestServices(t, &fakeBackend{entries: testEntries()})

	e, ok, err := s.History.Lookup(context.Background(), "2")
	if err != nil {
		t.Fatalf("Lookup() error: %v", err)
	}
	if !ok || e.Name != "Pasta" {
		t.Errorf("Lookup(\"2\") = %+v, %v", e, ok)
	}

	if _, ok, _ := s.History.Lookup(context.Background(), "missing"); ok {
		t.Error("Lookup() found a missing entry")
	}
}
