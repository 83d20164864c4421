package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"queuesim/internal/models"
)

// RunStorage handles persistence of simulation runs to disk.
type RunStorage struct {
	mu      sync.RWMutex
	path    string
	history []models.RunEntry
}

// NewRunStorage creates a storage instance and loads existing runs if present.
func NewRunStorage(path string) (*RunStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure data directory: %w", err)
	}

	s := &RunStorage{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the file backing the storage.
func (s *RunStorage) Path() string {
	return s.path
}

// Append adds a run and persists the history to disk.
func (s *RunStorage) Append(entry models.RunEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	if err := s.persist(); err != nil {
		s.history = s.history[:len(s.history)-1]
		return err
	}
	return nil
}

// Latest returns the most recent run if it exists.
func (s *RunStorage) Latest() (models.RunEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return models.RunEntry{}, false
	}
	return s.history[len(s.history)-1], true
}

// Get looks a run up by id.
func (s *RunStorage) Get(id string) (models.RunEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].ID == id {
			return s.history[i], true
		}
	}
	return models.RunEntry{}, false
}

// History returns a copy of the entire history slice.
func (s *RunStorage) History() []models.RunEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make([]models.RunEntry, len(s.history))
	copy(copied, s.history)
	return copied
}

// HistoryN returns a copy of the last limit runs, oldest first. A limit of
// zero or less returns everything.
func (s *RunStorage) HistoryN(limit int) []models.RunEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := 0
	if limit > 0 && limit < len(s.history) {
		from = len(s.history) - limit
	}
	copied := make([]models.RunEntry, len(s.history)-from)
	copy(copied, s.history[from:])
	return copied
}

func (s *RunStorage) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.history = []models.RunEntry{}
			return nil
		}
		return fmt.Errorf("read history: %w", err)
	}

	if len(data) == 0 {
		s.history = []models.RunEntry{}
		return nil
	}

	var entries []models.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse history: %w", err)
	}

	s.history = entries
	return nil
}

func (s *RunStorage) persist() error {
	bytes, err := json.MarshalIndent(s.history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmpPath := fmt.Sprintf("%s.%d.tmp", s.path, time.Now().UnixNano())
	if err := os.WriteFile(tmpPath, bytes, 0o644); err != nil {
		return fmt.Errorf("write temp history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
