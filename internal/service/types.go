// Package service provides the business logic layer for foodscan.
// It wraps the backend client, history cache, aggregator and goal store,
// providing one API for both CLI and TUI frontends.
package service

import (
	"context"
	"io"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/history"
	"github.com/JoacoWn/FoodScan/internal/storage"
)

// Backend is the part of api.Client the services use.
type Backend interface {
	AnalyzeImage(ctx context.Context, image io.Reader, filename, mealType string) (*food.AnalysisResult, error)
	ListHistory(ctx context.Context) ([]food.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
}

// Source tells where a history snapshot came from.
type Source int

const (
	SourceBackend Source = iota
	SourceCache
)

func (s Source) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "backend"
}

// Snapshot is the full food log at one point in time.
type Snapshot struct {
	Entries   []food.Entry
	Warnings  []storage.ParseWarning
	Source    Source
	FetchedAt time.Time
}

// DayView is everything the day screen shows.
type DayView struct {
	Summary   history.DailySummary `json:"summary"`
	Goals     goals.Goals          `json:"goals"`
	Progress  goals.Progress       `json:"progress"`
	Source    string               `json:"source"`
	FetchedAt time.Time            `json:"fetched_at"`
	// Warnings are corrupted cache lines, offline only.
	Warnings []storage.ParseWarning `json:"-"`
}

// DaysResult lists the dates that have entries.
type DaysResult struct {
	Days      []history.DayCount
	Source    Source
	FetchedAt time.Time
	Warnings  []storage.ParseWarning
}

// AnalyzeResult is the outcome of an image upload.
type AnalyzeResult struct {
	Result *food.AnalysisResult
	// MealType is the section the entry will appear under.
	MealType string
	// UploadTag is the meal_type value sent to the backend.
	UploadTag string
}
