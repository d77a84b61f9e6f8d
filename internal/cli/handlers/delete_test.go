package handlers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JoacoWn/FoodScan/internal/api"
)

func TestDeleteEntry_Confirmed(t *testing.T) {
	deps, stdout, stderr, exitCode, backend := setupTestDepsWith(t, &stubBackend{entries: sampleEntries()})
	deps.Stdin = strings.NewReader("y\n")

	DeleteEntry(deps, "a3", false)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", *exitCode, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"Entry: Pasta [Almuerzo]", "Logged: Tue, Jun 4, 2024 13:00", "Delete this entry? [y/N]", "Deleted entry a3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "a3" {
		t.Errorf("deleted = %v", backend.deleted)
	}

	path, _, _ := deps.Services.History.CacheStatus()
	cached, err := cachedEntries(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range cached {
		if e.ID == "a3" {
			t.Error("deleted entry is still in the cache")
		}
	}
}

func TestDeleteEntry_Cancelled(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"answer n", "n\n"},
		{"empty answer", "\n"},
		{"no input", ""},
		{"yes spelled out", "yes\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, stdout, _, exitCode, backend := setupTestDepsWith(t, &stubBackend{entries: sampleEntries()})
			deps.Stdin = strings.NewReader(tt.input)

			DeleteEntry(deps, "a1", false)

			if *exitCode != 0 {
				t.Errorf("expected exit code 0, got %d", *exitCode)
			}
			if !strings.Contains(stdout.String(), "Deletion cancelled.") {
				t.Errorf("expected cancellation, got %q", stdout.String())
			}
			if len(backend.deleted) != 0 {
				t.Errorf("entry deleted without confirmation: %v", backend.deleted)
			}
		})
	}
}

func TestDeleteEntry_SkipConfirm(t *testing.T) {
	deps, stdout, _, exitCode, backend := setupTestDepsWith(t, &stubBackend{entries: sampleEntries()})

	DeleteEntry(deps, " a1 ", true)

	if *exitCode != 0 {
		t.Fatalf("expected exit code 0, got %d", *exitCode)
	}
	if strings.Contains(stdout.String(), "[y/N]") {
		t.Error("prompted despite --yes")
	}
	if len(backend.deleted) != 1 || backend.deleted[0] != "a1" {
		t.Errorf("deleted = %v", backend.deleted)
	}
}

func TestDeleteEntry_NotFound(t *testing.T) {
	deps, stdout, stderr, exitCode, _ := setupTestDepsWith(t, &stubBackend{
		entries:   sampleEntries(),
		deleteErr: &api.Error{Kind: api.KindStatus, Op: "DELETE historial/zzz", StatusCode: 404, Message: "Registro no encontrado"},
	})
	deps.Stdin = strings.NewReader("y\n")

	DeleteEntry(deps, "zzz", false)

	if *exitCode != 1 {
		t.Errorf("expected exit code 1, got %d", *exitCode)
	}
	if strings.Contains(stdout.String(), "Entry:") {
		t.Errorf("previewed an entry that is not in the history: %q", stdout.String())
	}
	if !strings.Contains(stderr.String(), "Error: Entry zzz not found") {
		t.Errorf("expected not-found error, got %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Hint: The entry may already have been deleted") {
		t.Errorf("expected not-found hint, got %q", stderr.String())
	}
}

func TestDeleteEntry_Guards(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		deps, _, stderr, exitCode, backend := setupTestDepsWith(t, &stubBackend{})

		DeleteEntry(deps, "  ", true)

		if *exitCode != 1 || !strings.Contains(stderr.String(), "Entry ID is required") {
			t.Errorf("exit = %d, stderr = %q", *exitCode, stderr.String())
		}
		if len(backend.deleted) != 0 {
			t.Error("backend called with an empty id")
		}
	})

	t.Run("offline", func(t *testing.T) {
		deps, _, stderr, exitCode, backend := setupTestDepsWith(t, &stubBackend{})
		deps.Services.History.SetOffline(true)

		DeleteEntry(deps, "a1", true)

		if *exitCode != 1 || !strings.Contains(stderr.String(), "Cannot delete entries while offline") {
			t.Errorf("exit = %d, stderr = %q", *exitCode, stderr.String())
		}
		if len(backend.deleted) != 0 {
			t.Error("backend called while offline")
		}
	})
}

func TestPromptConfirmation(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"  y  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		stdout := &bytes.Buffer{}
		if got := promptConfirmation(stdout, strings.NewReader(tt.input)); got != tt.want {
			t.Errorf("promptConfirmation(%q) = %v, expected %v", tt.input, got, tt.want)
		}
	}
}
