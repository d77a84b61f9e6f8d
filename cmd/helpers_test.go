package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/logger"
	"github.com/JoacoWn/FoodScan/internal/osutil"
	"github.com/JoacoWn/FoodScan/internal/service"
	"github.com/JoacoWn/FoodScan/internal/tui"
)

// MockPathProvider points the config directory at a temp dir.
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
	MkdirAllFn      func(path string, perm os.FileMode) error
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return nil
}

// fakeBackend is an httptest FoodScan backend.
type fakeBackend struct {
	mu       sync.Mutex
	entries  []food.Entry
	deleted  []string
	uploads  []string
	analysis *food.AnalysisResult
	server   *httptest.Server
}

func newFakeBackend(t *testing.T, entries []food.Entry) *fakeBackend {
	t.Helper()
	b := &fakeBackend{entries: entries}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /historial", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(b.entries)
	})
	mux.HandleFunc("DELETE /historial/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		id := r.PathValue("id")
		for i, e := range b.entries {
			if e.ID == id {
				b.entries = append(b.entries[:i], b.entries[i+1:]...)
				b.deleted = append(b.deleted, id)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "Registro eliminado"})
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Registro no encontrado"})
	})
	mux.HandleFunc("POST /analizar", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("image")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "No se envió ninguna imagen"})
			return
		}
		_, _ = io.Copy(io.Discard, file)
		_ = file.Close()

		b.mu.Lock()
		defer b.mu.Unlock()
		b.uploads = append(b.uploads, header.Filename+":"+r.FormValue("meal_type"))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(b.analysis)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

// todayStamp returns a backend timestamp for hour:00 UTC today.
func todayStamp(hour int) string {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05.000000")
}

func fixtureEntries() []food.Entry {
	return []food.Entry{
		{ID: "t1", Timestamp: todayStamp(8), MealType: "desayuno", Name: "Avena", Nutrients: food.Nutrients{Calories: 350, Protein: 12, Fat: 7, Carbs: 55}},
		{ID: "t2", Timestamp: todayStamp(0), MealType: "aperitivo", Name: "Manzana", Nutrients: food.Nutrients{Calories: 80, Carbs: 20}},
		{ID: "old", Timestamp: "2024-06-04T13:00:00.000000", MealType: "almuerzo", Name: "Pasta", Nutrients: food.Nutrients{Calories: 400, Protein: 15, Fat: 10, Carbs: 70},
			Items: []food.FoodItem{{Name: "Fideos", Grams: 120, Nutrients: food.Nutrients{Calories: 300}, Estimated: true}}},
	}
}

// cmdEnv captures the output of one test's commands.
type cmdEnv struct {
	stdout   *bytes.Buffer
	stderr   *bytes.Buffer
	exitCode int
	backend  *fakeBackend
	dir      string
}

// setupCmdTest wires real services to a fake backend, with the config
// directory in a temp dir and UTC day boundaries.
func setupCmdTest(t *testing.T, entries []food.Entry) *cmdEnv {
	t.Helper()
	env := &cmdEnv{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		backend: newFakeBackend(t, entries),
		dir:     t.TempDir(),
	}

	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return env.dir, nil },
		MkdirAllFn:      os.MkdirAll,
	})
	t.Cleanup(osutil.ResetProvider)

	t.Setenv("FOODSCAN_BASE_URL", env.backend.server.URL)
	t.Setenv("FOODSCAN_TIMEZONE", "UTC")
	t.Setenv("FOODSCAN_LOG_LEVEL", "error")

	SetDeps(&Deps{
		Stdout:      env.stdout,
		Stderr:      env.stderr,
		Stdin:       strings.NewReader(""),
		Exit:        func(code int) { env.exitCode = code },
		LoadConfig:  service.LoadConfig,
		InitLogger:  quietLogger,
		NewServices: service.NewServices,
		RunTUI:      tui.Run,
	})
	t.Cleanup(ResetDeps)
	return env
}

func quietLogger(opts logger.Options) (func() error, error) {
	opts.Stderr = io.Discard
	opts.SentryDSN = ""
	return logger.Init(opts)
}

// run executes the root command with args, resetting flag state first.
func (env *cmdEnv) run(args ...string) {
	offlineFlag = false
	jsonFlag = false
	baseURLFlag = ""
	itemsFlag = false
	mealFlag = ""
	yesFlag = false
	initConfigFlag = false
	goalsInput = service.GoalsInput{}
	_ = rootCmd.PersistentFlags().Set("tui", "false")

	env.stdout.Reset()
	env.stderr.Reset()
	env.exitCode = 0

	rootCmd.SetArgs(args)
	rootCmd.SetOut(env.stdout)
	rootCmd.SetErr(env.stderr)
	_ = rootCmd.Execute()
}
