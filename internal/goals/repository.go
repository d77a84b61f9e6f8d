package goals

import (
	"context"
	"fmt"
	"log/slog"
)

// Repository loads and saves Goals through a KV.
type Repository struct {
	kv  KV
	log *slog.Logger
}

// NewRepository wraps kv. A nil logger means slog.Default().
func NewRepository(kv KV, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{kv: kv, log: log}
}

func keyed(g Goals) map[string]float64 {
	return map[string]float64{
		KeyCalories: g.Calories,
		KeyProtein:  g.Protein,
		KeyFat:      g.Fat,
		KeyCarbs:    g.Carbs,
	}
}

// Load returns the stored goals. Keys that were never written take their
// default value and are written back so later reads are stable.
func (r *Repository) Load(ctx context.Context) (Goals, error) {
	defaults := keyed(Defaults())
	values := make(map[string]float64, len(defaults))
	missing := make(map[string]float64)

	for key, def := range defaults {
		v, ok, err := r.kv.Get(ctx, key)
		if err != nil {
			return Goals{}, fmt.Errorf("failed to load goals: %w", err)
		}
		if !ok {
			v = def
			missing[key] = def
		}
		values[key] = v
	}

	if len(missing) > 0 {
		r.log.Debug("seeding default goals", "keys", len(missing))
		if err := r.kv.SetMany(ctx, missing); err != nil {
			return Goals{}, fmt.Errorf("failed to seed default goals: %w", err)
		}
	}

	return Goals{
		Calories: values[KeyCalories],
		Protein:  values[KeyProtein],
		Fat:      values[KeyFat],
		Carbs:    values[KeyCarbs],
	}, nil
}

// Save validates g and writes all four values in one operation.
// Nothing is written when validation fails.
func (r *Repository) Save(ctx context.Context, g Goals) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := r.kv.SetMany(ctx, keyed(g)); err != nil {
		return fmt.Errorf("failed to save goals: %w", err)
	}
	r.log.Info("goals updated",
		"calories", g.Calories, "protein", g.Protein, "fat", g.Fat, "carbs", g.Carbs)
	return nil
}

// Reset restores the default goals.
func (r *Repository) Reset(ctx context.Context) (Goals, error) {
	g := Defaults()
	if err := r.Save(ctx, g); err != nil {
		return Goals{}, err
	}
	return g, nil
}

// Close closes the underlying store.
func (r *Repository) Close() error {
	return r.kv.Close()
}
