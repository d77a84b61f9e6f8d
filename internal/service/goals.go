package service

import (
	"context"
	"strconv"

	"github.com/JoacoWn/FoodScan/internal/goals"
	"github.com/JoacoWn/FoodScan/internal/history"
)

// GoalsInput carries raw goal values as typed by the user. An empty field
// keeps the current value.
type GoalsInput struct {
	Calories string
	Protein  string
	Fat      string
	Carbs    string
}

// GoalsService reads and updates the nutrition goals.
type GoalsService struct {
	repo *goals.Repository
}

// NewGoalsService creates a new GoalsService
func NewGoalsService(repo *goals.Repository) *GoalsService {
	return &GoalsService{repo: repo}
}

// Get returns the current goals.
func (s *GoalsService) Get(ctx context.Context) (goals.Goals, error) {
	return s.repo.Load(ctx)
}

// Update parses in and saves the result. Nothing is saved unless every
// value is valid; the error is then a *goals.ValidationError.
func (s *GoalsService) Update(ctx context.Context, in GoalsInput) (goals.Goals, error) {
	current, err := s.repo.Load(ctx)
	if err != nil {
		return goals.Goals{}, err
	}

	g, err := goals.Parse(
		orCurrent(in.Calories, current.Calories),
		orCurrent(in.Protein, current.Protein),
		orCurrent(in.Fat, current.Fat),
		orCurrent(in.Carbs, current.Carbs),
	)
	if err != nil {
		return goals.Goals{}, err
	}

	if err := s.repo.Save(ctx, g); err != nil {
		return goals.Goals{}, err
	}
	return g, nil
}

func orCurrent(raw string, current float64) string {
	if raw == "" {
		return strconv.FormatFloat(current, 'f', -1, 64)
	}
	return raw
}

// Reset restores the default goals.
func (s *GoalsService) Reset(ctx context.Context) (goals.Goals, error) {
	return s.repo.Reset(ctx)
}

// Close closes the goal store.
func (s *GoalsService) Close() error {
	return s.repo.Close()
}

func trackProgress(summary history.DailySummary, g goals.Goals) goals.Progress {
	return goals.Track(summary.Totals, g)
}
