package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/history"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// Common errors for the history service
var (
	ErrNoCache         = errors.New("no local history cache; run once while online")
	ErrOfflineDelete   = errors.New("cannot delete entries while offline")
	ErrEntryIDRequired = errors.New("entry ID is required")
)

// HistoryService fetches the food log and builds day views.
type HistoryService struct {
	backend   Backend
	cachePath string
	agg       *history.Aggregator
	goals     *GoalsService
	offline   bool
	log       *slog.Logger
}

// NewHistoryService creates a new HistoryService
func NewHistoryService(backend Backend, cachePath string, agg *history.Aggregator, goals *GoalsService, log *slog.Logger) *HistoryService {
	return &HistoryService{
		backend:   backend,
		cachePath: cachePath,
		agg:       agg,
		goals:     goals,
		log:       log,
	}
}

// SetOffline switches reads between the backend and the local cache.
func (s *HistoryService) SetOffline(offline bool) {
	s.offline = offline
}

// Offline reports whether reads use the local cache.
func (s *HistoryService) Offline() bool {
	return s.offline
}

// Location is the reference timezone for day boundaries.
func (s *HistoryService) Location() *time.Location {
	return s.agg.Location()
}

// Fetch returns the whole food log. Online, it calls the backend and
// refreshes the cache; a cache write failure is logged, not returned.
// Offline, it reads the cache.
func (s *HistoryService) Fetch(ctx context.Context) (Snapshot, error) {
	if s.offline {
		return s.readCache()
	}

	entries, err := s.backend.ListHistory(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to fetch history: %w", err)
	}

	if s.cachePath != "" {
		if err := storage.WriteEntries(s.cachePath, entries); err != nil {
			s.log.Warn("failed to update history cache", "path", s.cachePath, "error", err)
		}
	}

	return Snapshot{
		Entries:   entries,
		Source:    SourceBackend,
		FetchedAt: time.Now(),
	}, nil
}

func (s *HistoryService) readCache() (Snapshot, error) {
	if s.cachePath == "" {
		return Snapshot{}, ErrNoCache
	}
	if _, err := os.Stat(s.cachePath); errors.Is(err, os.ErrNotExist) {
		return Snapshot{}, ErrNoCache
	}

	result, err := storage.ReadEntriesWithWarnings(s.cachePath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read history cache: %w", err)
	}
	for _, w := range result.Warnings {
		s.log.Warn("corrupted cache line", "line", w.LineNumber, "error", w.Error)
	}

	return Snapshot{
		Entries:   result.Entries,
		Warnings:  result.Warnings,
		Source:    SourceCache,
		FetchedAt: result.FetchedAt,
	}, nil
}

// View builds the day view for date from an existing snapshot.
func (s *HistoryService) View(ctx context.Context, snap Snapshot, date time.Time) (*DayView, error) {
	g, err := s.goals.Get(ctx)
	if err != nil {
		return nil, err
	}

	summary := s.agg.Summarize(snap.Entries, date)
	return &DayView{
		Summary:   summary,
		Goals:     g,
		Progress:  trackProgress(summary, g),
		Source:    snap.Source.String(),
		FetchedAt: snap.FetchedAt,
		Warnings:  snap.Warnings,
	}, nil
}

// Day fetches the history and builds the view for date.
func (s *HistoryService) Day(ctx context.Context, date time.Time) (*DayView, error) {
	snap, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return s.View(ctx, snap, date)
}

// Days lists the dates that have entries, newest first.
func (s *HistoryService) Days(ctx context.Context) (*DaysResult, error) {
	snap, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return &DaysResult{
		Days:      s.agg.DayCounts(snap.Entries),
		Source:    snap.Source,
		FetchedAt: snap.FetchedAt,
		Warnings:  snap.Warnings,
	}, nil
}

// Lookup finds an entry by ID in a fresh snapshot.
func (s *HistoryService) Lookup(ctx context.Context, id string) (food.Entry, bool, error) {
	snap, err := s.Fetch(ctx)
	if err != nil {
		return food.Entry{}, false, err
	}
	for _, e := range snap.Entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return food.Entry{}, false, nil
}

// Delete removes an entry on the backend and then from the local cache.
// A failed delete leaves everything untouched.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEntryIDRequired
	}
	if s.offline {
		return ErrOfflineDelete
	}

	if err := s.backend.DeleteEntry(ctx, id); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}
	s.log.Info("entry deleted", "id", id)

	if s.cachePath != "" {
		if _, err := storage.RemoveEntry(s.cachePath, id); err != nil {
			s.log.Warn("failed to update history cache", "path", s.cachePath, "error", err)
		}
	}
	return nil
}

// CacheStatus reports on the local history cache.
func (s *HistoryService) CacheStatus() (string, storage.CacheHealth, error) {
	health, err := storage.ValidateCache(s.cachePath)
	return s.cachePath, health, err
}
