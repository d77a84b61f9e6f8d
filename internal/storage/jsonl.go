// Package storage keeps a local JSON Lines snapshot of the backend history
// so the day views work offline.
package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"github.com/JoacoWn/FoodScan/internal/food"
	"github.com/JoacoWn/FoodScan/internal/osutil"
)

const (
	// HistoryFile is the name of the JSON Lines cache file
	HistoryFile = "history.jsonl"

	maxLineBytes = 4 << 20
)

// ParseWarning represents a warning about a corrupted or malformed entry
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the results of reading the cache, including both
// successfully parsed entries and any warnings about corrupted lines.
type ReadResult struct {
	Entries  []food.Entry   // Successfully parsed entries
	Warnings []ParseWarning // Warnings about corrupted lines
	// FetchedAt is when the snapshot was written; zero if there is none.
	FetchedAt time.Time
}

// GetCachePath returns the path to the history cache file, creating the
// application directory if needed.
func GetCachePath() (string, error) {
	return osutil.AppFile(HistoryFile)
}

// ReadEntriesWithWarnings reads all entries from the cache file and returns
// both successfully parsed entries and warnings about any corrupted lines.
// Returns an empty ReadResult if the file doesn't exist.
func ReadEntriesWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Entries:  []food.Entry{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	if info, err := file.Stat(); err == nil {
		result.FetchedAt = info.ModTime()
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()
		if lineContent == "" {
			continue
		}

		var e food.Entry
		if err := json.Unmarshal([]byte(lineContent), &e); err != nil {
			// Record warning for corrupted line
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		result.Entries = append(result.Entries, e)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// WriteEntries replaces the cache with entries, one canonical JSON object
// per line. Uses atomic write pattern (write to temp file, then rename).
func WriteEntries(path string, entries []food.Entry) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(file)
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := w.Flush(); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return err
	}

	// Close temp file before rename
	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	// Atomic rename
	return os.Rename(tmpFile, path)
}

// RemoveEntry drops the entry with the given ID from the cache. It reports
// whether an entry was removed; a missing cache file is not an error.
func RemoveEntry(path, id string) (bool, error) {
	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		return false, err
	}

	kept := make([]food.Entry, 0, len(result.Entries))
	removed := false
	for _, e := range result.Entries {
		if e.ID == id {
			removed = true
			continue
		}
		kept = append(kept, e)
	}

	if !removed {
		return false, nil
	}
	return true, WriteEntries(path, kept)
}

// CacheHealth summarizes the state of the cache file.
type CacheHealth struct {
	Exists           bool
	ValidEntries     int            // Number of successfully parsed entries
	CorruptedEntries int            // Number of corrupted/malformed lines
	Warnings         []ParseWarning // Detailed information about each corrupted line
	FetchedAt        time.Time
}

// ValidateCache analyzes the cache file. Returns an empty CacheHealth if the
// file doesn't exist.
func ValidateCache(path string) (CacheHealth, error) {
	health := CacheHealth{Warnings: []ParseWarning{}}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}

	result, err := ReadEntriesWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.Exists = true
	health.ValidEntries = len(result.Entries)
	health.CorruptedEntries = len(result.Warnings)
	health.Warnings = result.Warnings
	health.FetchedAt = result.FetchedAt
	return health, nil
}
