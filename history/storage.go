// Package history records applied rename operations and reverses them. The
// store is a single JSON document in the platform config directory; writes
// are atomic (temp file + rename) and corrupted content is backed up and
// reset rather than surfaced as an error.
package history

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/tidyfile/tidy/models"
)

const historyFilename = "history.json"

// MaxEntries is the cap on retained entries; the oldest entries beyond the
// cap are pruned on record.
const MaxEntries = 500

// Storage persists the history store as a JSON file.
type Storage struct {
	Path string
}

// DefaultPath returns the history file location in the platform config
// directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not find config directory: %v", err)
	}
	return filepath.Join(configDir, "tidy", historyFilename), nil
}

// NewStorage returns storage backed by the given file path.
func NewStorage(path string) *Storage {
	return &Storage{Path: path}
}

// Load reads the store. A missing file yields a fresh empty store. Unparsable
// or schema-invalid content is moved aside with a timestamped backup suffix
// and a fresh store is returned; only I/O errors unrelated to content are
// surfaced.
func (s *Storage) Load() (*models.HistoryStore, error) {
	data, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return models.NewHistoryStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %v", err)
	}

	var store models.HistoryStore
	if err := json.Unmarshal(data, &store); err != nil {
		s.backupCorrupt(err)
		return models.NewHistoryStore(), nil
	}
	if store.Version == "" {
		s.backupCorrupt(fmt.Errorf("missing schema version"))
		return models.NewHistoryStore(), nil
	}
	if store.Entries == nil {
		store.Entries = []models.OperationHistoryEntry{}
	}
	return &store, nil
}

func (s *Storage) backupCorrupt(cause error) {
	backup := fmt.Sprintf("%s.backup.%d", s.Path, time.Now().UnixMilli())
	if err := os.Rename(s.Path, backup); err != nil {
		log.Printf("Failed to back up corrupt history file: %v", err)
		return
	}
	log.Printf("History file was corrupt (%v); moved to %s", cause, backup)
}

// Save writes the store atomically: serialize to a temp file in the target
// directory, then rename over the destination.
func (s *Storage) Save(store *models.HistoryStore) error {
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %v", err)
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize history: %v", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %v", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write history: %v", err)
	}
	if err := os.Rename(tmpPath, s.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file: %v", err)
	}
	return nil
}
