package goals

import (
	"context"
	"errors"
	"sync"
)

// Storage keys, shared with the Android app's preference names.
const (
	KeyCalories = "calories_goal"
	KeyProtein  = "proteins_goal"
	KeyFat      = "fats_goal"
	KeyCarbs    = "carbs_goal"
)

// ErrClosed is returned by a KV used after Close.
var ErrClosed = errors.New("goals: store is closed")

// KV is a small float key-value store backing the goals.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (float64, bool, error)
	// SetMany writes all values or none.
	SetMany(ctx context.Context, values map[string]float64) error
	Close() error
}

// MemoryKV is an in-process KV, used in tests and when no database path is
// available.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string]float64
	closed bool
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]float64)}
}

func (m *MemoryKV) Get(ctx context.Context, key string) (float64, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) SetMany(ctx context.Context, values map[string]float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	for k, v := range values {
		m.data[k] = v
	}
	return nil
}

func (m *MemoryKV) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	return nil
}
